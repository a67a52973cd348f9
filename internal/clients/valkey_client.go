package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

type ValkeyClient struct {
	Client valkey.Client
	mu     sync.Mutex
}

func valkeyOptions() valkey.ClientOption {
	opts := valkey.ClientOption{
		InitAddress: []string{
			os.Getenv("VALKEY_INIT_ADDRESS"),
		},
		Password:         os.Getenv("VALKEY_PASSWORD"),
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if os.Getenv("VALKEY_TLS") == "true" {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	return opts
}

func InitValkey() *ValkeyClient {
	valkeyOnce.Do(func() {
		client, err := valkey.NewClient(valkeyOptions())
		if err != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		c := client.Do(ctx, client.B().Ping().Build())
		if c.Error() != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", c.Error()))
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")

		valkeyInstance = &ValkeyClient{Client: client}
	})
	return valkeyInstance
}

func (vc *ValkeyClient) recreateClient() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[ValkeyClient] Recreate failed and was recovered from panic",
				slog.Any("panic", r))
		}
	}()

	vc.mu.Lock()
	defer vc.mu.Unlock()
	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	vc.Client.Close()

	client, err := valkey.NewClient(valkeyOptions())
	if err != nil {
		panic(fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	c := client.Do(ctx, client.B().Ping().Build())
	if c.Error() != nil {
		panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", c.Error()))
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey")
	vc.Client = client
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, completed)
		// A nil reply (key miss) is a final answer, not a failure.
		if result.Error() == nil || valkey.IsValkeyNil(result.Error()) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		if isConnectionError(result.Error()) {
			vc.recreateClient()
		}

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
