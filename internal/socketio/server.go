package socketio

import (
	"Feedback_Backend/internal/model"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type SocketEvent string

const (
	FeedbackAdded SocketEvent = "FeedbackAdded"
)

type SocketServer struct {
	port       string
	httpServer *types.HttpServer
	io         *socket.Server
}

func NewSocketServer(port string) *SocketServer {
	s := &SocketServer{
		port:       port,
		httpServer: types.NewWebServer(nil),
	}

	serverOptions := socket.DefaultServerOptions()
	cors := &types.Cors{
		Origin:         "*",
		Methods:        "GET,POST",
		AllowedHeaders: "Content-Type",
		Credentials:    true,
	}
	serverOptions.SetCors(cors)

	s.io = socket.NewServer(s.httpServer, serverOptions)
	return s
}

// Start blocks serving Socket.IO clients on the configured port.
func (s *SocketServer) Start() {
	fmt.Println(" ┌───────────────────────────────────────────────────┐ ")
	fmt.Println(" │     Live feedback feed running on port: " + s.port + "      │ ")
	fmt.Println(" └───────────────────────────────────────────────────┘ ")
	s.httpServer.Listen(":"+s.port, nil)
}

// FeedbackAdded pushes a stored record to every connected client.
func (s *SocketServer) FeedbackAdded(feedback model.Feedback) {
	payload, err := decodePayload(feedback)
	if err != nil {
		log.Error("Error while decoding feedback for live feed:", err)
		return
	}
	s.Emit(FeedbackAdded, payload)
}

func decodePayload(feedback model.Feedback) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(feedback), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *SocketServer) Emit(event SocketEvent, data any) {
	err := s.io.Emit(string(event), data)
	if err != nil {
		log.Error("Error while emitting event:", err)
		return
	}
}
