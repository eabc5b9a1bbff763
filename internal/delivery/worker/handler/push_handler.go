package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"lamsa/config"
	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/repository"
	"lamsa/internal/domain/service"
	"lamsa/internal/infra/pubsub"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// newRetryableError wraps an error as retryable
func newRetryableError(err error) error {
	return &retryableError{err: err}
}

// isRetryableError checks if an error is retryable
func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// PushHandler handles Pub/Sub push messages carrying booking events.
type PushHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	userRepo       repository.UserRepository
	salonRepo      repository.SalonRepository
	mailer         service.Mailer
	messenger      service.Messenger
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	UserRepo  repository.UserRepository
	SalonRepo repository.SalonRepository
	Mailer    service.Mailer
	Messenger service.Messenger
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == pubsub.ProviderGoogle &&
		params.Config.PubSub.VerifyPushAuth

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		userRepo:       params.UserRepo,
		salonRepo:      params.SalonRepo,
		mailer:         params.Mailer,
		messenger:      params.Messenger,
	}
}

// HandlePush handles incoming Pub/Sub push messages. Permanent failures are
// acked with a 200 so the subscription does not redeliver them forever;
// transient failures return a 503 to trigger redelivery.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse booking event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Thread the request_id from the publisher through for tracing
	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing booking event",
		slog.String("kind", event.Kind),
		slog.String("booking_id", event.BookingID.String()),
		slog.String("status", event.Status),
	)

	if err := h.notify(ctx, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process booking event",
			slog.String("booking_id", event.BookingID.String()),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Booking event processed",
		slog.String("booking_id", event.BookingID.String()),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.BookingEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// notify emails and texts the booking's customer in their preferred
// language. A missing user is permanent; delivery failures are transient.
func (h *PushHandler) notify(ctx context.Context, event *service.BookingEvent) error {
	user, err := h.userRepo.FindByID(ctx, event.UserID)
	if err != nil {
		return errors.Wrap(err, "booking event references unknown user")
	}

	salonName := ""
	if salon, err := h.salonRepo.FindByID(ctx, event.SalonID); err == nil {
		salonName = salon.NameEn
		if user.PreferredLanguage == entity.LanguageArabic && salon.NameAr != "" {
			salonName = salon.NameAr
		}
	}

	subject, body := composeMessage(event, user.PreferredLanguage, salonName)

	if user.Email != "" {
		mail := service.Mail{To: user.Email, Subject: subject, Body: body}
		if err := h.mailer.Send(ctx, mail); err != nil {
			return newRetryableError(errors.Wrap(err, "failed to send booking email"))
		}
	}

	if user.Phone != "" {
		if err := h.messenger.SendText(ctx, user.Phone, body); err != nil {
			return newRetryableError(errors.Wrap(err, "failed to send booking text"))
		}
	}

	return nil
}

// composeMessage renders the notification in the user's language.
func composeMessage(event *service.BookingEvent, lang entity.Language, salonName string) (subject, body string) {
	when := event.Datetime.Format("2006-01-02 15:04")

	if lang == entity.LanguageArabic {
		switch {
		case event.Kind == service.BookingEventCreated:
			return "تم استلام حجزك",
				fmt.Sprintf("تم استلام حجزك لدى %s بتاريخ %s وهو بانتظار التأكيد.", salonName, when)
		case event.Status == string(entity.BookingConfirmed):
			return "تم تأكيد حجزك",
				fmt.Sprintf("تم تأكيد حجزك لدى %s بتاريخ %s.", salonName, when)
		case event.Status == string(entity.BookingCancelled):
			return "تم إلغاء حجزك",
				fmt.Sprintf("تم إلغاء حجزك لدى %s بتاريخ %s.", salonName, when)
		default:
			return "تحديث حالة الحجز",
				fmt.Sprintf("حالة حجزك لدى %s أصبحت %s.", salonName, event.Status)
		}
	}

	switch {
	case event.Kind == service.BookingEventCreated:
		return "Your booking is received",
			fmt.Sprintf("Your booking at %s on %s is received and pending confirmation.", salonName, when)
	case event.Status == string(entity.BookingConfirmed):
		return "Your booking is confirmed",
			fmt.Sprintf("Your booking at %s on %s is confirmed.", salonName, when)
	case event.Status == string(entity.BookingCancelled):
		return "Your booking was cancelled",
			fmt.Sprintf("Your booking at %s on %s was cancelled.", salonName, when)
	default:
		return "Booking status update",
			fmt.Sprintf("Your booking at %s is now %s.", salonName, event.Status)
	}
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience must match the URL of this push endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http" // For local development
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
