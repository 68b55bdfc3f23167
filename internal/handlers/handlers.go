package handlers

import (
	"errors"

	"sportify-backend/internal/config"
	"sportify-backend/internal/middleware"
	"sportify-backend/internal/models"
	"sportify-backend/internal/services"
	"sportify-backend/internal/storage"
	"sportify-backend/internal/utils"
	"sportify-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	authSvc         *services.AuthService
	tournamentSvc   *services.TournamentService
	registrationSvc *services.RegistrationService
	verifySvc       *services.VerificationService
	sponsorshipSvc  *services.SponsorshipService
	uploader        storage.FileUploader
	cfg             *config.Config
}

func NewHandler(
	authSvc *services.AuthService,
	tournamentSvc *services.TournamentService,
	registrationSvc *services.RegistrationService,
	verifySvc *services.VerificationService,
	sponsorshipSvc *services.SponsorshipService,
	uploader storage.FileUploader,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authSvc:         authSvc,
		tournamentSvc:   tournamentSvc,
		registrationSvc: registrationSvc,
		verifySvc:       verifySvc,
		sponsorshipSvc:  sponsorshipSvc,
		uploader:        uploader,
		cfg:             cfg,
	}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	auth := middleware.JWTMiddleware(h.cfg)
	organizer := middleware.RequireRole(models.RoleOrganizer)
	player := middleware.RequireRole(models.RolePlayer)
	sponsor := middleware.RequireRole(models.RoleSponsor)

	router.Get("/health", h.Health)

	// Public routes
	public := router.Group("/auth")
	{
		public.Post("/register", h.Register)
		public.Post("/login", h.Login)
		public.Get("/me", auth, h.GetProfile)
		public.Put("/profile", auth, h.UpdateProfile)
		public.Post("/verify-phone", auth, h.VerifyPhone)
	}

	tournaments := router.Group("/tournaments")
	{
		tournaments.Get("/", h.ListTournaments)
		tournaments.Get("/:id", h.GetTournament)
		tournaments.Post("/", auth, organizer, h.CreateTournament)
		tournaments.Put("/:id", auth, organizer, h.UpdateTournament)
		tournaments.Delete("/:id", auth, organizer, h.DeleteTournament)
	}

	registrations := router.Group("/registrations", auth, player)
	{
		registrations.Post("/create", h.CreateRegistration)
		registrations.Post("/verify-payment", h.VerifyPayment)
		registrations.Get("/my-registrations", h.ListMyRegistrations)
		registrations.Get("/:id/pass", h.GetEntryPass)
	}

	organizerRoutes := router.Group("/organizer", auth, organizer)
	{
		organizerRoutes.Get("/tournaments", h.ListOrganizerTournaments)
		organizerRoutes.Post("/verify-registration", h.VerifyRegistration)
		organizerRoutes.Get("/registrations/:tournamentId", h.ListTournamentRegistrations)

		organizerRoutes.Get("/sponsorships", h.ListOrganizerSponsorships)
		organizerRoutes.Post("/sponsorships", h.UpdateSponsorship)
		organizerRoutes.Post("/sponsorships/manage", h.ManageSponsorship)
		organizerRoutes.Post("/sponsorships/:id/:action", h.ManageSponsorshipAction)
	}

	sponsorRoutes := router.Group("/sponsor", auth, sponsor)
	{
		sponsorRoutes.Post("/sponsorships", h.CreateSponsorship)
		sponsorRoutes.Get("/sponsorships", h.ListSponsorSponsorships)
	}

	router.Post("/upload/aadhar", auth, middleware.RequireRole(models.RolePlayer, models.RoleOrganizer), h.UploadAadhar)
}

// ErrorHandler is the last stop for errors no handler translated. Anything
// that is not a *fiber.Error surfaces as 500 with its raw message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		logger.WithComponent("http").
			WithError(err).
			WithField("request_id", middleware.GetRequestID(c)).
			WithField("path", c.Path()).
			Error("unhandled error")
	}

	return utils.Error(c, message, code)
}

// handleServiceError maps service errors onto HTTP statuses. Unknown errors
// go to ErrorHandler.
func handleServiceError(c *fiber.Ctx, err error) error {
	appErr, ok := services.AsAppError(err)
	if !ok {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return utils.Error(c, fiberErr.Message, fiberErr.Code)
		}
		return err
	}

	switch appErr.Kind {
	case services.KindValidation:
		return utils.Error(c, appErr.Message, fiber.StatusBadRequest)
	case services.KindAuthentication:
		return utils.Error(c, appErr.Message, fiber.StatusUnauthorized)
	case services.KindAuthorization:
		return utils.Error(c, appErr.Message, fiber.StatusForbidden)
	case services.KindNotFound:
		return utils.Error(c, appErr.Message, fiber.StatusNotFound)
	default:
		return err
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "sportify-backend",
	})
}
