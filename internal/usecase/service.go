package usecase

import (
	"homecare-booking/internal/data/repository"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

// Gateways are the outside services the use cases call.
type Gateways struct {
	Processor PaymentProcessor
	Relay     FormRelay
	Mailer    Mailer
}

type Service struct {
	Catalog      CatalogService
	Intake       IntakeService
	Payment      PaymentService
	Booking      BookingService
	Contact      ContactService
	Notification NotificationService
}

func NewService(repo *repository.Repository, gw Gateways, config *utils.Config, log *zap.Logger) *Service {
	catalog := NewCatalogService(repo.ServiceOption, log)
	intake := NewIntakeService(catalog, log)
	notification := NewNotificationService(gw.Mailer, config, log)

	return &Service{
		Catalog:      catalog,
		Intake:       intake,
		Payment:      NewPaymentService(intake, gw.Processor, config, log),
		Booking:      NewBookingService(repo.Booking, intake, gw.Processor, notification, config, log),
		Contact:      NewContactService(intake, gw.Relay, log),
		Notification: notification,
	}
}
