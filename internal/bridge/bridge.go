package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/greenhollow/gh-game-core/internal/adapter"
	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/game"
	"github.com/greenhollow/gh-game-core/internal/logger"
	"github.com/greenhollow/gh-game-core/internal/store"
)

// Ledger listeners publish inbound transfer notifications on these subjects.
const (
	SubjectAssetTransfers = "ledger.transfers.assets"
	SubjectTokenTransfers = "ledger.transfers.tokens"
)

// errDropMessage marks payloads that can never be processed, regardless of
// how often they are redelivered
var errDropMessage = errors.New("message dropped")

// Config holds the configuration for the event bridge
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
	GameAccount    domain.OwnerName
}

// Bridge defines the interface for the event bridge
type Bridge interface {
	// Run starts the event bridge
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc      adapter.NatsConn
	js      adapter.JetStream
	cursors store.CursorStore
	svc     game.Service
	json    adapter.JSON
	config  Config
}

// NewBridge creates a new event bridge
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	cursors store.CursorStore,
	svc game.Service,
	jsonAdapter adapter.JSON,
) (Bridge, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	b := &bridge{
		nc:      nc,
		js:      js,
		cursors: cursors,
		svc:     svc,
		json:    jsonAdapter,
		config:  cfg,
	}

	return b, nil
}

// Run starts the event bridge
func (b *bridge) Run(ctx context.Context) error {
	logger.Info("Starting event bridge", zap.String("stream", b.config.StreamName), zap.String("consumer", b.config.ConsumerName))

	// Subscribe to all inbound transfer subjects
	subject := "ledger.transfers.>"

	// Create or get consumer
	consumerConfig := jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: subject,
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	// Create subscription
	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming messages")

	// Process messages strictly in order. Every action assumes no other
	// action interleaves mid-operation; sequential consumption is what
	// makes that assumption hold.
	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down event bridge")
			return ctx.Err()
		case msg := <-msgChan:
			b.handleMessage(ctx, msg)
		}
	}
}

// handleMessage processes a single NATS message
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	var err error
	switch {
	case strings.HasSuffix(msg.Subject(), ".assets"):
		err = b.handleAssetTransfer(ctx, msg)
	case strings.HasSuffix(msg.Subject(), ".tokens"):
		err = b.handleTokenTransfer(ctx, msg)
	default:
		logger.Warn("Unknown transfer subject", zap.String("subject", msg.Subject()))
		b.term(msg)
		return
	}

	if err == nil {
		b.ack(msg)
		b.recordCursor(ctx, msg)
		return
	}

	if errors.Is(err, errDropMessage) {
		b.term(msg)
		b.recordCursor(ctx, msg)
		return
	}

	// Deterministic rejections never succeed on redelivery.
	if domain.IsActionError(err) {
		logger.Warn("Transfer rejected",
			zap.String("subject", msg.Subject()),
			zap.Error(err),
		)
		b.term(msg)
		b.recordCursor(ctx, msg)
		return
	}

	logger.Error(err, zap.String("message", "Failed to process transfer"), zap.String("subject", msg.Subject()))
	if err := msg.Nak(); err != nil {
		logger.Error(err, zap.String("message", "Failed to NAK message"))
	}
}

// handleAssetTransfer dispatches an inbound NFT transfer by its memo
func (b *bridge) handleAssetTransfer(ctx context.Context, msg adapter.Message) error {
	var event domain.AssetTransferEvent
	if err := b.json.Unmarshal(msg.Data(), &event); err != nil {
		return fmt.Errorf("%w: unparseable asset transfer: %v", errDropMessage, err)
	}
	if !event.Valid() {
		return fmt.Errorf("%w: malformed asset transfer %q", errDropMessage, event.TxID)
	}

	// Transfers addressed elsewhere are not ours to act on.
	if event.To != b.config.GameAccount {
		return nil
	}

	cmd, err := domain.ParseAssetMemo(event.Memo)
	if err != nil {
		return err
	}

	logger.Info("Dispatching asset transfer",
		zap.String("from", event.From.String()),
		zap.String("memo", event.Memo),
		zap.Int("assets", len(event.AssetIDs)),
		zap.String("txID", event.TxID),
	)

	// The engine records the transaction id inside the action's own
	// transaction, so a failed action leaves the transfer unprocessed
	// and a redelivery retries it.
	switch cmd.Kind {
	case domain.MemoStakeSlot:
		return b.svc.RegisterFarmingItems(ctx, event.From, event.AssetIDs, event.TxID)
	case domain.MemoStakeItems:
		return b.svc.StakeItems(ctx, event.From, cmd.SlotAssetID, event.AssetIDs, event.TxID)
	case domain.MemoBlend:
		_, err := b.svc.Blend(ctx, event.From, event.AssetIDs, int64(cmd.RecipeID), event.TxID)
		return err
	case domain.MemoEquip:
		return b.svc.Equip(ctx, event.From, event.AssetIDs, event.TxID)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnrecognizedMemo, event.Memo)
	}
}

// handleTokenTransfer dispatches an inbound fungible-token transfer
func (b *bridge) handleTokenTransfer(ctx context.Context, msg adapter.Message) error {
	var event domain.TokenTransferEvent
	if err := b.json.Unmarshal(msg.Data(), &event); err != nil {
		return fmt.Errorf("%w: unparseable token transfer: %v", errDropMessage, err)
	}
	if !event.Valid() {
		return fmt.Errorf("%w: malformed token transfer %q", errDropMessage, event.TxID)
	}

	if event.To != b.config.GameAccount {
		return nil
	}

	cmd, err := domain.ParseTokenMemo(event.Memo)
	if err != nil {
		return err
	}

	logger.Info("Dispatching token transfer",
		zap.String("from", event.From.String()),
		zap.String("quantity", event.Quantity.String()),
		zap.String("txID", event.TxID),
	)

	switch cmd.Kind {
	case domain.MemoDeposit:
		return b.svc.Deposit(ctx, event.From, event.Quantity, event.TxID)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnrecognizedMemo, event.Memo)
	}
}

// recordCursor stores the stream sequence of a settled message. The durable
// consumer tracks position on its own; the persisted cursor exists so the
// applied ledger position can be inspected from the database.
func (b *bridge) recordCursor(ctx context.Context, msg adapter.Message) {
	md, err := msg.Metadata()
	if err != nil {
		logger.Warn("Failed to read message metadata", zap.Error(err))
		return
	}
	if err := b.cursors.SetStreamCursor(ctx, b.config.StreamName, md.Sequence.Stream); err != nil {
		logger.Warn("Failed to record stream cursor", zap.Error(err))
	}
}

func (b *bridge) ack(msg adapter.Message) {
	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

func (b *bridge) term(msg adapter.Message) {
	if err := msg.Term(); err != nil {
		logger.Error(err, zap.String("message", "Failed to terminate message"))
	}
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	b.nc.Close()
}
