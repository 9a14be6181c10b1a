package cmd

import (
	"log/slog"

	httpadapter "eventrent/internal/adapters/in/http"
	"eventrent/internal/adapters/out/kafka"
	"eventrent/internal/adapters/out/postgres"
	redisadapter "eventrent/internal/adapters/out/redis"
	"eventrent/internal/core/application/usecases/commands"
	"eventrent/internal/core/application/usecases/queries"
	"eventrent/internal/core/domain/services"
	"eventrent/internal/core/ports"
	"eventrent/internal/jobs"
	"eventrent/internal/pkg/clock"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot builds every handler, the HTTP server and the jobs from one
// set of shared dependencies.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	engine     services.AvailabilityEngine
	pricing    services.PricingEngine
	clock      clock.Clock
	logger     *slog.Logger

	dispatcher *kafka.NotificationDispatcher
	redis      *redis.Client
}

// NewCompositionRoot creates the shared engines and the outbound clients.
// Neither Kafka nor Redis is contacted here; connections open on first use.
// Returns an error when the configured buffers are negative. Call Close on
// shutdown.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	engine, err := services.NewAvailabilityEngine(services.BufferPolicy{
		PrepBufferDays:   config.PrepBufferDays,
		ReturnBufferDays: config.ReturnBufferDays,
	})
	if err != nil {
		return nil, err
	}

	clk := clock.NewSystem()
	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		engine:     engine,
		pricing:    services.NewPricingEngine(),
		clock:      clk,
		logger:     logger,
		dispatcher: kafka.NewNotificationDispatcher(config.KafkaBrokers, config.KafkaNotificationTopic, clk),
		redis:      redisadapter.NewClient(config.RedisAddr),
	}, nil
}

// Close releases the Kafka writer and the Redis client.
func (c *CompositionRoot) Close() error {
	dispatcherErr := c.dispatcher.Close()
	if err := c.redis.Close(); err != nil {
		return err
	}
	return dispatcherErr
}

func (c *CompositionRoot) notifier() commands.Notifier {
	return commands.NewNotifier(c.dispatcher, c.logger)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// CreateSubmitOrderFromCartCommandHandler wires the SubmitOrderFromCart command handler.
func (c *CompositionRoot) CreateSubmitOrderFromCartCommandHandler() commands.SubmitOrderFromCartCommandHandler {
	return commands.NewSubmitOrderFromCartCommandHandler(c.uow(), c.engine, c.pricing, c.clock, c.notifier())
}

// CreateApproveStandardPricingCommandHandler wires the ApproveStandardPricing command handler.
func (c *CompositionRoot) CreateApproveStandardPricingCommandHandler() commands.ApproveStandardPricingCommandHandler {
	return commands.NewApproveStandardPricingCommandHandler(c.uow(), c.pricing, c.clock, c.notifier())
}

// CreateAdjustPricingCommandHandler wires the AdjustPricing command handler.
func (c *CompositionRoot) CreateAdjustPricingCommandHandler() commands.AdjustPricingCommandHandler {
	return commands.NewAdjustPricingCommandHandler(c.uow(), c.pricing, c.clock, c.notifier())
}

// CreateApprovePmgPricingCommandHandler wires the ApprovePmgPricing command handler.
func (c *CompositionRoot) CreateApprovePmgPricingCommandHandler() commands.ApprovePmgPricingCommandHandler {
	return commands.NewApprovePmgPricingCommandHandler(c.uow(), c.clock, c.notifier())
}

// CreateApproveQuoteCommandHandler wires the ApproveQuote command handler.
func (c *CompositionRoot) CreateApproveQuoteCommandHandler() commands.ApproveQuoteCommandHandler {
	return commands.NewApproveQuoteCommandHandler(c.uow(), c.engine, c.clock, c.notifier())
}

// CreateDeclineQuoteCommandHandler wires the DeclineQuote command handler.
func (c *CompositionRoot) CreateDeclineQuoteCommandHandler() commands.DeclineQuoteCommandHandler {
	return commands.NewDeclineQuoteCommandHandler(c.uow(), c.engine, c.clock, c.notifier())
}

// CreateAdvanceOrderStatusCommandHandler wires the AdvanceOrderStatus command handler.
func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.uow(), c.engine, c.clock, c.notifier())
}

// CreateUpdateFinancialStatusCommandHandler wires the UpdateFinancialStatus command handler.
func (c *CompositionRoot) CreateUpdateFinancialStatusCommandHandler() commands.UpdateFinancialStatusCommandHandler {
	return commands.NewUpdateFinancialStatusCommandHandler(c.uow(), c.clock, c.notifier())
}

// CreateCreatePricingTierCommandHandler wires the CreatePricingTier command handler.
func (c *CompositionRoot) CreateCreatePricingTierCommandHandler() commands.CreatePricingTierCommandHandler {
	var f commands.PricingUoWFactory = FuncPricingUoWFactory(func() commands.PricingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePricingTierCommandHandler(f)
}

// CreateUpdatePricingTierCommandHandler wires the UpdatePricingTier command handler.
func (c *CompositionRoot) CreateUpdatePricingTierCommandHandler() commands.UpdatePricingTierCommandHandler {
	var f commands.PricingUoWFactory = FuncPricingUoWFactory(func() commands.PricingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdatePricingTierCommandHandler(f)
}

// CreateChangeAssetQuantityCommandHandler wires the ChangeAssetQuantity command handler.
func (c *CompositionRoot) CreateChangeAssetQuantityCommandHandler() commands.ChangeAssetQuantityCommandHandler {
	var f commands.InventoryUoWFactory = FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeAssetQuantityCommandHandler(f, c.engine, c.clock)
}

// CreateSendQuoteRemindersCommandHandler wires the SendQuoteReminders command handler.
func (c *CompositionRoot) CreateSendQuoteRemindersCommandHandler() commands.SendQuoteRemindersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSendQuoteRemindersCommandHandler(f, redisadapter.NewReminderGuard(c.redis), c.clock, c.notifier())
}

// CreateGetAssetAvailabilityQueryHandler wires the GetAssetAvailability query handler.
func (c *CompositionRoot) CreateGetAssetAvailabilityQueryHandler() queries.GetAssetAvailabilityQueryHandler {
	return queries.NewGetAssetAvailabilityQueryHandler(c.gormDB)
}

// CreateCheckAssetsAvailabilityQueryHandler wires the CheckAssetsAvailability query handler.
func (c *CompositionRoot) CreateCheckAssetsAvailabilityQueryHandler() queries.CheckAssetsAvailabilityQueryHandler {
	return queries.NewCheckAssetsAvailabilityQueryHandler(c.uowFactory, c.engine)
}

// CreateCalculateStandardPricingQueryHandler wires the CalculateStandardPricing query handler.
func (c *CompositionRoot) CreateCalculateStandardPricingQueryHandler() queries.CalculateStandardPricingQueryHandler {
	return queries.NewCalculateStandardPricingQueryHandler(c.uowFactory, c.pricing)
}

// CreateEstimateCartPricingQueryHandler wires the EstimateCartPricing query handler.
func (c *CompositionRoot) CreateEstimateCartPricingQueryHandler() queries.EstimateCartPricingQueryHandler {
	return queries.NewEstimateCartPricingQueryHandler(c.uowFactory, c.pricing)
}

// CreateGetOrderStatusHistoryQueryHandler wires the GetOrderStatusHistory query handler.
func (c *CompositionRoot) CreateGetOrderStatusHistoryQueryHandler() queries.GetOrderStatusHistoryQueryHandler {
	return queries.NewGetOrderStatusHistoryQueryHandler(c.gormDB)
}

// CreateGetStaleQuotesQueryHandler wires the GetStaleQuotes query handler.
func (c *CompositionRoot) CreateGetStaleQuotesQueryHandler() queries.GetStaleQuotesQueryHandler {
	return queries.NewGetStaleQuotesQueryHandler(c.gormDB, c.clock)
}

// CreateHTTPServer wires every use case into the echo server.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		SubmitOrder:            c.CreateSubmitOrderFromCartCommandHandler(),
		ApproveStandardPricing: c.CreateApproveStandardPricingCommandHandler(),
		AdjustPricing:          c.CreateAdjustPricingCommandHandler(),
		ApprovePmgPricing:      c.CreateApprovePmgPricingCommandHandler(),
		ApproveQuote:           c.CreateApproveQuoteCommandHandler(),
		DeclineQuote:           c.CreateDeclineQuoteCommandHandler(),
		AdvanceOrderStatus:     c.CreateAdvanceOrderStatusCommandHandler(),
		UpdateFinancialStatus:  c.CreateUpdateFinancialStatusCommandHandler(),
		CreatePricingTier:      c.CreateCreatePricingTierCommandHandler(),
		UpdatePricingTier:      c.CreateUpdatePricingTierCommandHandler(),
		ChangeAssetQuantity:    c.CreateChangeAssetQuantityCommandHandler(),

		GetAssetAvailability:     c.CreateGetAssetAvailabilityQueryHandler(),
		CheckAssetsAvailability:  c.CreateCheckAssetsAvailabilityQueryHandler(),
		CalculateStandardPricing: c.CreateCalculateStandardPricingQueryHandler(),
		EstimateCartPricing:      c.CreateEstimateCartPricingQueryHandler(),
		GetOrderStatusHistory:    c.CreateGetOrderStatusHistoryQueryHandler(),
		GetStaleQuotes:           c.CreateGetStaleQuotesQueryHandler(),
	})
}

// CreateJobManager schedules the quote reminder job on QuoteReminderSchedule.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewQuoteReminderJob(
			c.CreateSendQuoteRemindersCommandHandler(),
			c.config.QuoteReminderSchedule,
			c.config.QuoteStaleAfter,
			c.config.QuoteReminderInterval,
			c.logger,
		),
	)
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

// Create calls f.
func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create calls f.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncInventoryUoWFactory adapts a function to commands.InventoryUoWFactory.
type FuncInventoryUoWFactory func() commands.InventoryUoW

// Create calls f.
func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

// FuncPricingUoWFactory adapts a function to commands.PricingUoWFactory.
type FuncPricingUoWFactory func() commands.PricingUoW

// Create calls f.
func (f FuncPricingUoWFactory) Create() commands.PricingUoW {
	return f()
}
