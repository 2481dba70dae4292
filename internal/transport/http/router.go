package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports"
	"github.com/Gunvolt24/notifier/pkg/httpx"
)

// defaultInboxLimit — размер страницы входящих, если limit не задан.
const defaultInboxLimit = 50

type Handler struct {
	inbox      ports.InboxReadService
	consumers  ports.ConsumerStatusProvider
	log        ports.Logger
	reqTimeout time.Duration
}

// NewHandler — reqTimeout <= 0 отключает таймаут запроса к сервису.
// consumers может быть nil: /consumers тогда отдаёт пустой список.
func NewHandler(inbox ports.InboxReadService, consumers ports.ConsumerStatusProvider, log ports.Logger, reqTimeout time.Duration) *Handler {
	return &Handler{inbox: inbox, consumers: consumers, log: log, reqTimeout: reqTimeout}
}

// NewRouter — otelServiceName пустой, если трейсинг выключен.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/users/:id/notifications", h.listNotifications)
	r.GET("/notifications/:id/organization", h.organizationOfNotification)
	r.GET("/consumers", h.consumerStatuses)

	return r
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.reqTimeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.reqTimeout)
}

// listNotifications — входящие пользователя.
// Доступы Altinn передаются параметром access=org:code:edition (повторяемым или через запятую).
func (h *Handler) listNotifications(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty user id"})
		return
	}
	access, err := parseAccess(httpx.QueryValues(c, "access"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, offset := httpx.ParseLimitOffset(c, defaultInboxLimit, domain.InboxLimit)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	list, err := h.inbox.NotificationsForUser(ctx, domain.InboxQuery{
		UserID: userID,
		Access: access,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.log.Errorf(ctx, "NotificationsForUser failed access=%d err=%v", len(access), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) organizationOfNotification(c *gin.Context) {
	id, err := httpx.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	org, err := h.inbox.OrgNumberForNotification(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "OrgNumberForNotification failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if org == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notificationId": id, "orgNumber": org})
}

// consumerStatuses — назначенные партиции и текущие попытки повтора по каждому консьюмеру.
func (h *Handler) consumerStatuses(c *gin.Context) {
	statuses := []ports.ConsumerStatus{}
	if h.consumers != nil {
		statuses = append(statuses, h.consumers.ConsumerStatuses()...)
	}
	c.JSON(http.StatusOK, statuses)
}
