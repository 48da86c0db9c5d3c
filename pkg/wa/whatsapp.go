package wa

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kotrzina/gas-wizard/pkg/config"
	"github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"
)

// maxMessageLength limits which messages are processed at all,
// commands are short and long messages are ordinary chatting
const maxMessageLength = 64

type WhatsAppClient struct {
	client   *whatsmeow.Client
	store    *store.Device
	handlers []EventHandler
	mu       sync.RWMutex

	config *config.Config
	ctx    context.Context
	logger *logrus.Logger
}

type EventHandler struct {
	MatchFunc  func(msg string) bool
	HandleFunc func(from, msg string) error // from = sender ID
}

// New prepares the client, it does not connect until Connect is called
func New(ctx context.Context, conf *config.Config, logger *logrus.Logger) *WhatsAppClient {
	customLogger := createLogger(logger)
	container, err := sqlstore.New(ctx, "postgres", conf.DBString, customLogger)
	if err != nil {
		logger.Fatalf("Failed to create container: %v", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		logger.Fatalf("Failed to get device: %v", err)
	}

	wa := &WhatsAppClient{
		client:   whatsmeow.NewClient(deviceStore, customLogger),
		store:    deviceStore,
		handlers: []EventHandler{},

		config: conf,
		ctx:    ctx,
		logger: logger,
	}

	wa.client.AddEventHandler(wa.eventHandler)
	return wa
}

// Connect opens the session. Handlers have to be registered before,
// offline messages are delivered right after connecting.
func (wa *WhatsAppClient) Connect() error {
	if wa.client.Store.ID != nil {
		wa.logger.Debugf("Already logged in")
		return wa.client.Connect()
	}

	wa.logger.Infof("Not logged in, getting QR code")
	qrChan, err := wa.client.GetQRChannel(wa.ctx)
	if err != nil {
		return fmt.Errorf("could not get QR channel: %w", err)
	}
	if err = wa.client.Connect(); err != nil {
		return err
	}

	go func() {
		for evt := range qrChan {
			if evt.Event == "code" {
				wa.logger.Infof("QR code: %s", evt.Code)
			} else {
				wa.logger.Infof("Login event: %s", evt.Event)
			}
		}

		wa.logger.Infof("Logged in")
	}()

	return nil
}

func (wa *WhatsAppClient) RegisterEventHandler(handler EventHandler) {
	wa.mu.Lock()
	defer wa.mu.Unlock()

	wa.handlers = append(wa.handlers, handler)
}

func (wa *WhatsAppClient) registeredHandlers() []EventHandler {
	wa.mu.RLock()
	defer wa.mu.RUnlock()

	return wa.handlers[:len(wa.handlers):len(wa.handlers)]
}

func (wa *WhatsAppClient) eventHandler(evt interface{}) {
	switch v := evt.(type) {
	case *events.Message:
		wa.handleIncomingMessage(v)
	}
}

func (wa *WhatsAppClient) handleIncomingMessage(msg *events.Message) {
	if msg.Info.IsFromMe || msg.Message == nil {
		return
	}

	text := msg.Message.GetConversation()
	if text == "" {
		text = msg.Message.GetExtendedTextMessage().GetText() // replies and messages with links
	}
	if text == "" {
		return
	}
	from := msg.Info.MessageSource.Chat.User // we want to reply to the same chat

	wa.logger.WithFields(logrus.Fields{
		"chat":   msg.Info.MessageSource.Chat.String(),
		"sender": msg.Info.MessageSource.Sender.String(),
	}).Infof("received message: %s", text)

	if len(text) > maxMessageLength {
		return
	}

	Dispatch(wa.registeredHandlers(), from, strings.TrimSpace(text), wa.logger)
}

// Dispatch runs the first handler matching the message
func Dispatch(handlers []EventHandler, from, text string, logger *logrus.Logger) bool {
	for _, handler := range handlers {
		if handler.MatchFunc(text) {
			if err := handler.HandleFunc(from, text); err != nil {
				logger.Errorf("Failed to handle message: %v", err)
			}
			return true
		}
	}

	return false
}

func (wa *WhatsAppClient) SendText(to, text string) error {
	msg := &waE2E.Message{
		Conversation: proto.String(text),
	}
	return wa.send(to, msg)
}

func (wa *WhatsAppClient) Close() {
	wa.client.Disconnect()
}

func (wa *WhatsAppClient) buildJid(user string) types.JID {
	if wa.config.Debug && wa.config.WhatsAppDebugJid != "" {
		user = wa.config.WhatsAppDebugJid
	}

	return BuildJid(user)
}

// BuildJid resolves user id to a JID, group ids are longer than phone numbers
func BuildJid(user string) types.JID {
	server := types.DefaultUserServer
	if len(user) > 14 {
		server = types.GroupServer
	}
	return types.JID{
		User:   user,
		Server: server,
	}
}

func (wa *WhatsAppClient) send(to string, msg *waE2E.Message) error {
	if !wa.client.IsConnected() {
		wa.logger.Errorf("Not connected to WhatsAppClient")
		return fmt.Errorf("not connected to WhatsAppClient")
	}

	resp, err := wa.client.SendMessage(wa.ctx, wa.buildJid(to), msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	wa.logger.Infof("Message sent: %s", resp.ID)
	return nil
}
