package ws

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/healthlink/dispatch_engine/internal/config"
	"github.com/healthlink/dispatch_engine/internal/geo"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/healthlink/dispatch_engine/internal/stream"
	"github.com/healthlink/dispatch_engine/pkg/token"
	"github.com/sirupsen/logrus"
)

const (
	authWait     = 5 * time.Second
	writeWait    = 5 * time.Second
	controlQueue = 8
)

// LocationStream - поток геопозиций инцидента
type LocationStream interface {
	Publish(ctx context.Context, incidentID uuid.UUID, participantID string, loc models.Location) (models.LocationEvent, error)
	Subscribe(ctx context.Context, incidentID uuid.UUID, participantID string) (*stream.Subscription, error)
}

type authMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// locationMessage - входящий кадр с позицией участника
type locationMessage struct {
	Type      string     `json:"type"`
	Lat       *float64   `json:"lat"`
	Lng       *float64   `json:"lng"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type eventPayload struct {
	ParticipantID string                 `json:"participantId"`
	Role          models.ParticipantRole `json:"role"`
	Lat           float64                `json:"lat"`
	Lng           float64                `json:"lng"`
	DistanceKm    float64                `json:"distanceKm"`
	ETAMinutes    int                    `json:"etaMinutes"`
	Timestamp     time.Time              `json:"timestamp"`
	Seq           uint64                 `json:"seq"`
}

type frame struct {
	Type          string        `json:"type"`
	ParticipantID string        `json:"participantId,omitempty"`
	Event         *eventPayload `json:"event,omitempty"`
	Error         string        `json:"error,omitempty"`
}

type Handler struct {
	stream    LocationStream
	secret    []byte
	pingEvery time.Duration
	logger    *logrus.Logger
	upgrader  websocket.Upgrader
}

func NewHandler(s LocationStream, logger *logrus.Logger, cfg *config.Config) *Handler {
	pingEvery := cfg.StreamPingEvery
	if pingEvery <= 0 {
		pingEvery = 30 * time.Second
	}
	return &Handler{
		stream:    s,
		secret:    []byte(cfg.StreamJWTSecret),
		pingEvery: pingEvery,
		logger:    logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(cfg.StreamAllowedOrigins),
		},
	}
}

// originChecker пропускает клиентов без Origin (мобильные приложения), тот же хост
// и origin из STREAM_ALLOWED_ORIGINS; "*" разрешает любой origin
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(strings.ToLower(o), "/")] = struct{}{}
	}
	_, allowAll := set["*"]
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if strings.EqualFold(u.Host, r.Host) {
			return true
		}
		_, ok := set[strings.ToLower(origin)]
		return ok
	}
}

// RegisterRoutes регистрирует WebSocket-маршрут потока геопозиций
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws/incidents/:id", h.connect)
}

// @Summary Incident location stream
// @Description WebSocket. The first frame must be {"type":"auth","token":"<stream token>"}; then location frames {"lat","lng","timestamp"} are published and events of all participants are pushed back.
// @Tags Stream
// @Param id path string true "Incident ID"
// @Success 101 "Switching Protocols"
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Router /ws/incidents/{id} [get]
func (h *Handler) connect(c *gin.Context) {
	incidentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithFields(logrus.Fields{
		"handler":     "ws",
		"method":      "connect",
		"incident_id": incidentID,
	})

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	claims, err := h.authenticate(conn, incidentID)
	if err != nil {
		log.WithError(err).Warn("WebSocket authentication failed")
		h.reject(conn, err.Error())
		return
	}
	participantID := claims.Subject
	log = log.WithField("participant_id", participantID)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub, err := h.stream.Subscribe(ctx, incidentID, participantID)
	if err != nil {
		log.WithError(err).Warn("Stream subscription rejected")
		h.reject(conn, streamError(err))
		return
	}
	log.Info("Participant joined location stream")

	control := make(chan frame, controlQueue)
	control <- frame{Type: "connected", ParticipantID: participantID}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writer(conn, sub, control, log)
	}()

	h.reader(ctx, conn, incidentID, participantID, control, log)
	cancel()
	<-writerDone
	log.Info("Participant left location stream")
}

func (h *Handler) authenticate(conn *websocket.Conn, incidentID uuid.UUID) (*token.Claims, error) {
	if err := conn.SetReadDeadline(time.Now().Add(authWait)); err != nil {
		return nil, err
	}
	auth := new(authMessage)
	if err := conn.ReadJSON(auth); err != nil {
		return nil, errors.New("auth frame expected")
	}
	if auth.Type != "auth" {
		return nil, errors.New("invalid auth type: " + auth.Type)
	}
	claims, err := token.Parse(h.secret, auth.Token)
	if err != nil {
		return nil, err
	}
	if claims.IncidentID != incidentID.String() {
		return nil, errors.New("token was issued for another incident")
	}
	return claims, nil
}

func (h *Handler) reject(conn *websocket.Conn, message string) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteJSON(frame{Type: "error", Error: message})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, message), time.Now().Add(writeWait))
}

// reader публикует позиции клиента, пока соединение живо; pong продлевает дедлайн чтения
func (h *Handler) reader(ctx context.Context, conn *websocket.Conn, incidentID uuid.UUID, participantID string, control chan<- frame, log *logrus.Entry) {
	pongWait := 2 * h.pingEvery
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg locationMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("WebSocket read failed")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		if msg.Lat == nil || msg.Lng == nil {
			h.enqueue(control, frame{Type: "error", Error: "lat and lng are required"})
			continue
		}
		loc := models.Location{Lat: *msg.Lat, Lng: *msg.Lng}
		if msg.Timestamp != nil {
			loc.Timestamp = *msg.Timestamp
		}
		if _, err := h.stream.Publish(ctx, incidentID, participantID, loc); err != nil {
			log.WithError(err).Debug("Location rejected")
			h.enqueue(control, frame{Type: "error", Error: streamError(err)})
		}
	}
}

func (h *Handler) enqueue(control chan<- frame, f frame) {
	select {
	case control <- f:
	default:
	}
}

// writer - единственный писатель в соединение: события, служебные кадры и ping
func (h *Handler) writer(conn *websocket.Conn, sub *stream.Subscription, control <-chan frame, log *logrus.Entry) {
	ticker := time.NewTicker(h.pingEvery)
	defer ticker.Stop()
	defer conn.Close()

	events := sub.Events()
	for {
		select {
		case e, ok := <-events:
			if !ok {
				reason := "stream closed"
				if sub.Dropped() {
					reason = "subscriber too slow"
					log.Warn("Slow stream subscriber disconnected")
				}
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason), time.Now().Add(writeWait))
				return
			}
			if err := h.write(conn, frame{Type: "location", Event: toPayload(e)}); err != nil {
				return
			}
		case f := <-control:
			if err := h.write(conn, f); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) write(conn *websocket.Conn, f frame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(f)
}

func toPayload(e models.LocationEvent) *eventPayload {
	return &eventPayload{
		ParticipantID: e.ParticipantID,
		Role:          e.Role,
		Lat:           e.Lat,
		Lng:           e.Lng,
		DistanceKm:    e.DistanceKm,
		ETAMinutes:    e.ETAMinutes,
		Timestamp:     e.Timestamp,
		Seq:           e.Seq,
	}
}

func streamError(err error) string {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return "forbidden"
	case errors.Is(err, models.ErrNotFound):
		return "incident stream is closed"
	case errors.Is(err, geo.ErrInvalidCoordinate):
		return "invalid coordinate"
	}
	return "internal error"
}
