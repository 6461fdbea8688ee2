// Command order-sim drives a running API server with synthetic traffic:
// it fills carts, checks out, and redeems milestone discount codes as they
// become available. Useful for demoing the nth-order discount flow.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"
)

var productIDs = []string{"p1", "p2", "p3", "p4", "p5"}

// codeQueue hands minted discount codes to the next checkout, each at most
// once.
type codeQueue struct {
	mu    sync.Mutex
	codes []string
}

func (q *codeQueue) push(code string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.codes = append(q.codes, code)
}

func (q *codeQueue) pop() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.codes) == 0 {
		return ""
	}
	code := q.codes[0]
	q.codes = q.codes[1:]
	return code
}

func main() {
	var (
		baseURL string
		orders  int
		workers int
	)

	flag.StringVar(&baseURL, "base-url", "http://localhost:8080", "API server base URL")
	flag.IntVar(&orders, "orders", 20, "total number of orders to place")
	flag.IntVar(&workers, "workers", 2, "concurrent simulated shoppers")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, baseURL, orders, workers); err != nil {
		slog.Error("order simulation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("order simulation completed")
}

func run(ctx context.Context, baseURL string, orders, workers int) error {
	client := &http.Client{Timeout: 10 * time.Second}
	queue := &codeQueue{}

	jobs := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	for w := range workers {
		userID := fmt.Sprintf("sim-user-%d", w+1)
		g.Go(func() error {
			for n := range jobs {
				if err := placeOrder(ctx, client, baseURL, userID, queue); err != nil {
					return errors.Wrapf(err, "order %d", n)
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for n := range orders {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- n + 1:
			}
		}
		return nil
	})

	return g.Wait()
}

// placeOrder fills the user's cart with a few random products, checks out
// (redeeming a queued discount code when one is waiting), and asks the
// admin endpoint whether the new order count minted another code.
func placeOrder(ctx context.Context, client *http.Client, baseURL, userID string, queue *codeQueue) error {
	for range 1 + rand.Intn(3) {
		addReq := map[string]any{
			"userId":    userID,
			"productId": productIDs[rand.Intn(len(productIDs))],
			"quantity":  1 + rand.Intn(2),
		}
		if err := post(ctx, client, baseURL+"/cart/add", addReq, nil); err != nil {
			return errors.Wrap(err, "add to cart")
		}
	}

	code := queue.pop()
	checkoutReq := map[string]any{"userId": userID}
	if code != "" {
		checkoutReq["discountCode"] = code
	}

	var checkoutResp struct {
		Order struct {
			Subtotal       int64 `json:"subtotal"`
			DiscountAmount int64 `json:"discountAmount"`
			Total          int64 `json:"total"`
		} `json:"order"`
		Message string `json:"message"`
	}
	if err := post(ctx, client, baseURL+"/checkout", checkoutReq, &checkoutResp); err != nil {
		return errors.Wrap(err, "checkout")
	}
	slog.Info("order placed",
		slog.String("user", userID),
		slog.Int64("subtotal", checkoutResp.Order.Subtotal),
		slog.Int64("discount", checkoutResp.Order.DiscountAmount),
		slog.Int64("total", checkoutResp.Order.Total),
	)

	var genResp struct {
		Discount *struct {
			Code string `json:"code"`
		} `json:"discount"`
	}
	if err := post(ctx, client, baseURL+"/admin/generate-discount", nil, &genResp); err != nil {
		return errors.Wrap(err, "generate discount")
	}
	if genResp.Discount != nil {
		slog.Info("discount code minted", slog.String("code", genResp.Discount.Code))
		queue.push(genResp.Discount.Code)
	}

	return nil
}

func post(ctx context.Context, client *http.Client, url string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return errors.Wrap(err, "encode body")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return errors.Errorf("%s: status %d: %s", url, resp.StatusCode, apiErr.Error)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}
