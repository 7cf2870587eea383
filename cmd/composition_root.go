package cmd

import (
	"log/slog"
	"sync"

	httpin "bakery/internal/adapters/in/http"
	"bakery/internal/adapters/out/password"
	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/services"
	"bakery/internal/core/ports"
	"bakery/internal/jobs"
	"bakery/internal/pkg/metrics"
)

// CompositionRoot wires use cases to the storage backend and notifier
// chosen at startup. Handlers built here are backend agnostic.
type CompositionRoot struct {
	cfg        Config
	uowFactory ports.UnitOfWorkFactory
	notifier   ports.Notifier
	hasher     ports.PasswordHasher
	metrics    *metrics.Metrics
	logger     *slog.Logger

	limiterOnce sync.Once
	limiter     *httpin.RateLimiter
}

func NewCompositionRoot(
	cfg Config,
	uowFactory ports.UnitOfWorkFactory,
	notifier ports.Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) *CompositionRoot {
	if m != nil && notifier != nil {
		notifier = m.Notifier(notifier)
	}
	return &CompositionRoot{
		cfg:        cfg,
		uowFactory: uowFactory,
		notifier:   notifier,
		hasher:     password.NewBcryptHasher(0),
		metrics:    m,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWs() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) applicationUoWs() commands.ApplicationUoWFactory {
	return FuncApplicationUoWFactory(func() commands.ApplicationUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) reviewUoWs() commands.ReviewUoWFactory {
	return FuncReviewUoWFactory(func() commands.ReviewUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) messageUoWs() commands.MessageUoWFactory {
	return FuncMessageUoWFactory(func() commands.MessageUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) userUoWs() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) readers() queries.ReaderFactory {
	return FuncReaderFactory(func() queries.Reader { return c.uowFactory.Create() })
}

func (c *CompositionRoot) assignmentEngine() services.AssignmentEngine {
	return services.NewAssignmentEngine(c.cfg.JuniorBakerMaxActiveOrders)
}

func (c *CompositionRoot) promotionPolicy() services.PromotionPolicy {
	return services.NewPromotionPolicy(c.cfg.PromotionMinCompletedOrders)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWs(), c.hasher, c.logger)
}

func (c *CompositionRoot) CreateBootstrapAdminCommandHandler() commands.BootstrapAdminCommandHandler {
	return commands.NewBootstrapAdminCommandHandler(c.userUoWs(), c.hasher, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWs(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWs(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.orderUoWs(), c.assignmentEngine(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWs(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSubmitReviewCommandHandler() commands.SubmitReviewCommandHandler {
	return commands.NewSubmitReviewCommandHandler(c.reviewUoWs(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSendMessageCommandHandler() commands.SendMessageCommandHandler {
	return commands.NewSendMessageCommandHandler(c.messageUoWs(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreatePurgeMessagesCommandHandler() commands.PurgeMessagesCommandHandler {
	return commands.NewPurgeMessagesCommandHandler(c.messageUoWs(), c.logger)
}

func (c *CompositionRoot) CreateNotifyUnclaimedOrdersCommandHandler() commands.NotifyUnclaimedOrdersCommandHandler {
	return commands.NewNotifyUnclaimedOrdersCommandHandler(c.orderUoWs(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSubmitApplicationCommandHandler() commands.SubmitApplicationCommandHandler {
	return commands.NewSubmitApplicationCommandHandler(c.applicationUoWs(), c.promotionPolicy(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateDecideApplicationCommandHandler() commands.DecideApplicationCommandHandler {
	return commands.NewDecideApplicationCommandHandler(c.applicationUoWs(), c.promotionPolicy(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersForActorQueryHandler() queries.GetOrdersForActorQueryHandler {
	return queries.NewGetOrdersForActorQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetMessagesQueryHandler() queries.GetMessagesQueryHandler {
	return queries.NewGetMessagesQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetApplicationsQueryHandler() queries.GetApplicationsQueryHandler {
	return queries.NewGetApplicationsQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetBakerStatsQueryHandler() queries.GetBakerStatsQueryHandler {
	return queries.NewGetBakerStatsQueryHandler(c.readers())
}

// CreateHTTPServer builds the HTTP adapter over every use case.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		RegisterUser:      c.CreateRegisterUserCommandHandler(),
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		AssignOrder:       c.CreateAssignOrderCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		SubmitReview:      c.CreateSubmitReviewCommandHandler(),
		SendMessage:       c.CreateSendMessageCommandHandler(),
		SubmitApplication: c.CreateSubmitApplicationCommandHandler(),
		DecideApplication: c.CreateDecideApplicationCommandHandler(),
		GetOrdersForActor: c.CreateGetOrdersForActorQueryHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetMessages:       c.CreateGetMessagesQueryHandler(),
		GetApplications:   c.CreateGetApplicationsQueryHandler(),
		GetBakerStats:     c.CreateGetBakerStatsQueryHandler(),
	}, c.metrics, c.logger)
}

// CreateRateLimiter returns the process-wide limiter shared by the HTTP
// server and the cleanup job.
func (c *CompositionRoot) CreateRateLimiter() *httpin.RateLimiter {
	c.limiterOnce.Do(func() {
		c.limiter = httpin.NewRateLimiter(c.cfg.RateLimitRPS, c.cfg.RateLimitBurst)
	})
	return c.limiter
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePurgeMessagesCommandHandler(),
		c.CreateNotifyUnclaimedOrdersCommandHandler(),
		c.CreateRateLimiter(),
		jobs.Settings{
			MessageRetention: c.cfg.MessageRetention,
			UnclaimedAfter:   c.cfg.UnclaimedOrderAfter,
			LimiterIdle:      c.cfg.RateLimitIdle,
		},
		c.metrics,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncApplicationUoWFactory func() commands.ApplicationUoW

func (f FuncApplicationUoWFactory) Create() commands.ApplicationUoW {
	return f()
}

type FuncReviewUoWFactory func() commands.ReviewUoW

func (f FuncReviewUoWFactory) Create() commands.ReviewUoW {
	return f()
}

type FuncMessageUoWFactory func() commands.MessageUoW

func (f FuncMessageUoWFactory) Create() commands.MessageUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncReaderFactory func() queries.Reader

func (f FuncReaderFactory) Create() queries.Reader {
	return f()
}
