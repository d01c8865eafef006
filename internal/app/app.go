package app

import (
	"github.com/arman-y/MentorHubBack/internal/config"
	"github.com/arman-y/MentorHubBack/internal/repository"
	"github.com/arman-y/MentorHubBack/internal/services"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App bundles the constructed service layer. The HTTP layer (out of tree)
// consumes these; construction is plain constructor wiring, no container.
type App struct {
	Mentorships   *services.MentorshipService
	Bookings      *services.BookingService
	Ledger        *services.LedgerService
	Notifications *services.NotificationService
}

func New(cfg *config.Config, pool *pgxpool.Pool, logger *zap.Logger) *App {
	mentorshipRepo := repository.NewMentorshipRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	walletRepo := repository.NewWalletRepository(pool)
	mentorRepo := repository.NewMentorRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	notifications := services.NewNotificationService(notificationRepo)
	ledger := services.NewLedgerService(walletRepo, cfg.PlatformAccountID)

	return &App{
		Mentorships: services.NewMentorshipService(
			mentorshipRepo,
			mentorRepo,
			ledger,
			notifications,
			logger,
			cfg.PlatformFeeRate,
			cfg.SessionCancelFee,
		),
		Bookings: services.NewBookingService(
			bookingRepo,
			mentorRepo,
			userRepo,
			notifications,
			logger,
		),
		Ledger:        ledger,
		Notifications: notifications,
	}
}
