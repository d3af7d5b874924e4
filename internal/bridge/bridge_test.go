package bridge_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/greenhollow/gh-game-core/internal/adapter"
	"github.com/greenhollow/gh-game-core/internal/bridge"
	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/logger"
	"github.com/greenhollow/gh-game-core/internal/mocks"
	"github.com/greenhollow/gh-game-core/internal/store"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

const gameAccount = domain.OwnerName("ghgame")

func testConfig() bridge.Config {
	return bridge.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "ledger",
		ConsumerName:   "bridge-consumer",
		MaxReconnects:  10,
		ReconnectWait:  1 * time.Second,
		ConnectionName: "test-bridge",
		AckWaitTimeout: 30 * time.Second,
		MaxDeliver:     5,
		GameAccount:    gameAccount,
	}
}

// bridgeFixture wires a bridge against mocked NATS, a mocked game service and
// an in-memory database for stream cursors.
type bridgeFixture struct {
	ctrl      *gomock.Controller
	natsJS    *mocks.MockNatsJetStream
	natsConn  *mocks.MockNatsConn
	jetStream *mocks.MockJetStream
	svc       *mocks.MockGameService
	cursors   store.CursorStore
	bridge    bridge.Bridge
	seq       uint64
}

func newBridgeFixture(t *testing.T) *bridgeFixture {
	ctrl := gomock.NewController(t)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &bridgeFixture{
		ctrl:      ctrl,
		natsJS:    mocks.NewMockNatsJetStream(ctrl),
		natsConn:  mocks.NewMockNatsConn(ctrl),
		jetStream: mocks.NewMockJetStream(ctrl),
		svc:       mocks.NewMockGameService(ctrl),
		cursors:   store.NewCursorStore(db),
	}

	f.natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(f.natsConn, f.jetStream, nil)

	b, err := bridge.NewBridge(testConfig(), f.natsJS, f.cursors, f.svc, adapter.NewJSON())
	require.NoError(t, err)
	f.bridge = b

	return f
}

// start runs the bridge and returns the captured message handler. The bridge
// shuts down with the test context.
func (f *bridgeFixture) start(t *testing.T) adapter.MessageHandler {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	consumer := mocks.NewMockNatsConsumer(f.ctrl)
	consumeContext := mocks.NewMockConsumeContext(f.ctrl)

	f.jetStream.EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), "ledger", gomock.Any()).
		Return(consumer, nil)
	consumer.EXPECT().
		Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: "bridge-consumer"}, nil)
	consumeContext.EXPECT().Stop().AnyTimes()

	handlerCh := make(chan adapter.MessageHandler, 1)
	consumer.EXPECT().
		Consume(gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, opts ...jetstream.PullConsumeOpt) (adapter.ConsumeContext, error) {
			handlerCh <- handler
			return consumeContext, nil
		})

	go func() {
		_ = f.bridge.Run(ctx)
	}()

	select {
	case handler := <-handlerCh:
		return handler
	case <-time.After(5 * time.Second):
		t.Fatal("bridge did not start consuming")
		return nil
	}
}

// assetMessage builds a mock message carrying an asset transfer notification
func (f *bridgeFixture) assetMessage(t *testing.T, event domain.AssetTransferEvent) (*mocks.MockJetStreamMessage, chan string) {
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return f.message(bridge.SubjectAssetTransfers, data)
}

// tokenMessage builds a mock message carrying a token transfer notification
func (f *bridgeFixture) tokenMessage(t *testing.T, event domain.TokenTransferEvent) (*mocks.MockJetStreamMessage, chan string) {
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return f.message(bridge.SubjectTokenTransfers, data)
}

// message builds a mock message whose terminal disposition (ack, term or nak)
// is reported on the returned channel.
func (f *bridgeFixture) message(subject string, data []byte) (*mocks.MockJetStreamMessage, chan string) {
	msg := mocks.NewMockJetStreamMessage(f.ctrl)
	msg.EXPECT().Subject().Return(subject).AnyTimes()
	msg.EXPECT().Data().Return(data).AnyTimes()

	f.seq++
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{
		Sequence: jetstream.SequencePair{Stream: f.seq},
	}, nil).AnyTimes()

	done := make(chan string, 1)
	msg.EXPECT().Ack().DoAndReturn(func() error {
		done <- "ack"
		return nil
	}).MaxTimes(1)
	msg.EXPECT().Nak().DoAndReturn(func() error {
		done <- "nak"
		return nil
	}).MaxTimes(1)
	msg.EXPECT().Term().DoAndReturn(func() error {
		done <- "term"
		return nil
	}).MaxTimes(1)

	return msg, done
}

func awaitDisposition(t *testing.T, done chan string) string {
	select {
	case d := <-done:
		return d
	case <-time.After(5 * time.Second):
		t.Fatal("message was never acknowledged")
		return ""
	}
}

func assetEvent(memo string, assetIDs ...domain.AssetID) domain.AssetTransferEvent {
	return domain.AssetTransferEvent{
		From:      "alice",
		To:        gameAccount,
		AssetIDs:  assetIDs,
		Memo:      memo,
		TxID:      "tx-" + memo,
		BlockNum:  100,
		Timestamp: time.Now().UTC(),
	}
}

func TestNewBridge(t *testing.T) {
	t.Run("connects with the configured options", func(t *testing.T) {
		f := newBridgeFixture(t)
		assert.NotNil(t, f.bridge)
	})

	t.Run("returns the connection error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		natsJS := mocks.NewMockNatsJetStream(ctrl)
		natsJS.EXPECT().
			Connect(gomock.Any(), gomock.Any()).
			Return(nil, nil, assert.AnError)

		b, err := bridge.NewBridge(testConfig(), natsJS, nil, nil, adapter.NewJSON())
		assert.Error(t, err)
		assert.Nil(t, b)
	})
}

func TestRun(t *testing.T) {
	t.Run("fails when the consumer cannot be created", func(t *testing.T) {
		f := newBridgeFixture(t)
		f.jetStream.EXPECT().
			CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, assert.AnError)

		err := f.bridge.Run(context.Background())
		assert.ErrorContains(t, err, "failed to create/update consumer")
	})

	t.Run("fails when consumer info is unavailable", func(t *testing.T) {
		f := newBridgeFixture(t)
		consumer := mocks.NewMockNatsConsumer(f.ctrl)
		f.jetStream.EXPECT().
			CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(consumer, nil)
		consumer.EXPECT().Info(gomock.Any()).Return(nil, assert.AnError)

		err := f.bridge.Run(context.Background())
		assert.ErrorContains(t, err, "failed to get consumer info")
	})

	t.Run("fails when consuming cannot start", func(t *testing.T) {
		f := newBridgeFixture(t)
		consumer := mocks.NewMockNatsConsumer(f.ctrl)
		f.jetStream.EXPECT().
			CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(consumer, nil)
		consumer.EXPECT().
			Info(gomock.Any()).
			Return(&jetstream.ConsumerInfo{Name: "bridge-consumer"}, nil)
		consumer.EXPECT().Consume(gomock.Any()).Return(nil, assert.AnError)

		err := f.bridge.Run(context.Background())
		assert.ErrorContains(t, err, "failed to create subscription")
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		f := newBridgeFixture(t)
		ctx, cancel := context.WithCancel(context.Background())

		consumer := mocks.NewMockNatsConsumer(f.ctrl)
		consumeContext := mocks.NewMockConsumeContext(f.ctrl)
		f.jetStream.EXPECT().
			CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(consumer, nil)
		consumer.EXPECT().
			Info(gomock.Any()).
			Return(&jetstream.ConsumerInfo{Name: "bridge-consumer"}, nil)
		consumer.EXPECT().
			Consume(gomock.Any()).
			Return(consumeContext, nil)
		consumeContext.EXPECT().Stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- f.bridge.Run(ctx)
		}()
		cancel()

		select {
		case err := <-errCh:
			assert.Equal(t, context.Canceled, err)
		case <-time.After(5 * time.Second):
			t.Fatal("bridge did not shut down")
		}
	})
}

func TestAssetTransferDispatch(t *testing.T) {
	t.Run("stake memo registers farming items", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		msg, done := f.assetMessage(t, assetEvent("stake", 1, 2))
		f.svc.EXPECT().
			RegisterFarmingItems(gomock.Any(), domain.OwnerName("alice"), []domain.AssetID{1, 2}, "tx-stake").
			Return(nil)

		handler(msg)
		assert.Equal(t, "ack", awaitDisposition(t, done))
	})

	t.Run("stake with a slot stakes into it", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		msg, done := f.assetMessage(t, assetEvent("stake:42", 10, 11))
		f.svc.EXPECT().
			StakeItems(gomock.Any(), domain.OwnerName("alice"), domain.AssetID(42), []domain.AssetID{10, 11}, "tx-stake:42").
			Return(nil)

		handler(msg)
		assert.Equal(t, "ack", awaitDisposition(t, done))
	})

	t.Run("blend memo blends against the recipe", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		msg, done := f.assetMessage(t, assetEvent("blend:7", 100, 101))
		f.svc.EXPECT().
			Blend(gomock.Any(), domain.OwnerName("alice"), []domain.AssetID{100, 101}, int64(7), "tx-blend:7").
			Return(domain.AssetID(500), nil)

		handler(msg)
		assert.Equal(t, "ack", awaitDisposition(t, done))
	})

	t.Run("equip memo equips the assets", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		msg, done := f.assetMessage(t, assetEvent("equip", 200))
		f.svc.EXPECT().
			Equip(gomock.Any(), domain.OwnerName("alice"), []domain.AssetID{200}, "tx-equip").
			Return(nil)

		handler(msg)
		assert.Equal(t, "ack", awaitDisposition(t, done))
	})

	t.Run("ignores transfers addressed to another account", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		event := assetEvent("stake", 1)
		event.To = "someoneelse"
		msg, done := f.assetMessage(t, event)

		handler(msg)
		assert.Equal(t, "ack", awaitDisposition(t, done))
	})

	t.Run("dispatches a redelivered transaction again", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		// Dedupe lives inside the engine's transaction; the bridge hands
		// every delivery through so a rolled-back action gets retried.
		event := assetEvent("stake", 1)
		f.svc.EXPECT().
			RegisterFarmingItems(gomock.Any(), domain.OwnerName("alice"), []domain.AssetID{1}, "tx-stake").
			Return(nil).
			Times(2)

		msg, done := f.assetMessage(t, event)
		handler(msg)
		assert.Equal(t, "ack", awaitDisposition(t, done))

		msg, done = f.assetMessage(t, event)
		handler(msg)
		assert.Equal(t, "ack", awaitDisposition(t, done))
	})

	t.Run("terminates on an unrecognized memo", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		msg, done := f.assetMessage(t, assetEvent("launch", 1))

		handler(msg)
		assert.Equal(t, "term", awaitDisposition(t, done))
	})

	t.Run("terminates on a deterministic rejection", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		msg, done := f.assetMessage(t, assetEvent("stake", 1))
		f.svc.EXPECT().
			RegisterFarmingItems(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.ErrNotOwner)

		handler(msg)
		assert.Equal(t, "term", awaitDisposition(t, done))
	})

	t.Run("naks on an infrastructure failure", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		msg, done := f.assetMessage(t, assetEvent("stake", 1))
		f.svc.EXPECT().
			RegisterFarmingItems(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(assert.AnError)

		handler(msg)
		assert.Equal(t, "nak", awaitDisposition(t, done))
	})

	t.Run("terminates an unparseable payload", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		msg, done := f.message(bridge.SubjectAssetTransfers, []byte("not json"))

		handler(msg)
		assert.Equal(t, "term", awaitDisposition(t, done))
	})

	t.Run("terminates a structurally invalid transfer", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		event := assetEvent("stake")
		msg, done := f.assetMessage(t, event)

		handler(msg)
		assert.Equal(t, "term", awaitDisposition(t, done))
	})

	t.Run("terminates a transfer without a transaction id", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		event := assetEvent("stake", 1)
		event.TxID = ""
		msg, done := f.assetMessage(t, event)

		handler(msg)
		assert.Equal(t, "term", awaitDisposition(t, done))
	})
}

func TestTokenTransferDispatch(t *testing.T) {
	tokenEvent := func(memo string, quantity domain.TokenAmount) domain.TokenTransferEvent {
		return domain.TokenTransferEvent{
			From:      "alice",
			To:        gameAccount,
			Quantity:  quantity,
			Memo:      memo,
			TxID:      "tx-token-" + memo,
			BlockNum:  101,
			Timestamp: time.Now().UTC(),
		}
	}

	t.Run("deposit memo credits the sender", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		msg, done := f.tokenMessage(t, tokenEvent("deposit", domain.TokenFromFloat(100)))
		f.svc.EXPECT().
			Deposit(gomock.Any(), domain.OwnerName("alice"), domain.TokenFromFloat(100), "tx-token-deposit").
			Return(nil)

		handler(msg)
		assert.Equal(t, "ack", awaitDisposition(t, done))
	})

	t.Run("retries a deposit that failed transiently", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		event := tokenEvent("deposit", domain.TokenFromFloat(100))
		gomock.InOrder(
			f.svc.EXPECT().
				Deposit(gomock.Any(), domain.OwnerName("alice"), domain.TokenFromFloat(100), "tx-token-deposit").
				Return(assert.AnError),
			f.svc.EXPECT().
				Deposit(gomock.Any(), domain.OwnerName("alice"), domain.TokenFromFloat(100), "tx-token-deposit").
				Return(nil),
		)

		// The failed attempt naks so the redelivery can credit the deposit.
		msg, done := f.tokenMessage(t, event)
		handler(msg)
		assert.Equal(t, "nak", awaitDisposition(t, done))

		msg, done = f.tokenMessage(t, event)
		handler(msg)
		assert.Equal(t, "ack", awaitDisposition(t, done))
	})

	t.Run("ignores transfers addressed to another account", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		event := tokenEvent("deposit", domain.TokenFromFloat(100))
		event.To = "someoneelse"
		msg, done := f.tokenMessage(t, event)

		handler(msg)
		assert.Equal(t, "ack", awaitDisposition(t, done))
	})

	t.Run("terminates on an unrecognized memo", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		msg, done := f.tokenMessage(t, tokenEvent("buy gold", domain.TokenFromFloat(1)))

		handler(msg)
		assert.Equal(t, "term", awaitDisposition(t, done))
	})

	t.Run("terminates a zero quantity transfer", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		msg, done := f.tokenMessage(t, tokenEvent("deposit", 0))

		handler(msg)
		assert.Equal(t, "term", awaitDisposition(t, done))
	})
}

func TestUnknownSubject(t *testing.T) {
	f := newBridgeFixture(t)
	handler := f.start(t)

	msg, done := f.message("ledger.transfers.unknown", []byte("{}"))

	handler(msg)
	assert.Equal(t, "term", awaitDisposition(t, done))
}

func TestStreamCursor(t *testing.T) {
	t.Run("settled messages advance the cursor", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		msg, done := f.assetMessage(t, assetEvent("stake", 1))
		f.svc.EXPECT().
			RegisterFarmingItems(gomock.Any(), domain.OwnerName("alice"), []domain.AssetID{1}, "tx-stake").
			Return(nil)

		handler(msg)
		assert.Equal(t, "ack", awaitDisposition(t, done))

		// The cursor is written after the ack, so poll for it.
		assert.Eventually(t, func() bool {
			seq, err := f.cursors.GetStreamCursor(context.Background(), "ledger")
			return err == nil && seq == 1
		}, 5*time.Second, 10*time.Millisecond)
	})

	t.Run("dropped messages still advance the cursor", func(t *testing.T) {
		f := newBridgeFixture(t)
		handler := f.start(t)

		msg, done := f.message(bridge.SubjectAssetTransfers, []byte("not json"))
		handler(msg)
		assert.Equal(t, "term", awaitDisposition(t, done))

		assert.Eventually(t, func() bool {
			seq, err := f.cursors.GetStreamCursor(context.Background(), "ledger")
			return err == nil && seq == 1
		}, 5*time.Second, 10*time.Millisecond)
	})
}

func TestClose(t *testing.T) {
	f := newBridgeFixture(t)
	f.natsConn.EXPECT().Close()
	f.bridge.Close()
}
