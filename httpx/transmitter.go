package httpx

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ajg/form"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/mbolis/case-report/log"
	"github.com/mbolis/case-report/model"
)

// Outcome of a single dispatch, as seen by operators. Users never see it.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeRejected  Outcome = "rejected"
	OutcomeFailed    Outcome = "failed"
)

// FormTransmitter posts payloads as application/x-www-form-urlencoded on a
// background goroutine and drops the response.
type FormTransmitter struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
	// OnResult, if set, is called once per dispatch from the background
	// goroutine.
	OnResult func(Outcome)

	inFlight atomic.Int64
	wg       sync.WaitGroup
}

func NewFormTransmitter(url string, timeout time.Duration) *FormTransmitter {
	return &FormTransmitter{
		URL:     url,
		Client:  &http.Client{},
		Timeout: timeout,
	}
}

func (t *FormTransmitter) Transmit(p model.Payload) {
	t.inFlight.Inc()
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer t.inFlight.Dec()

		outcome, err := t.post(p)
		switch {
		case err != nil:
			log.Warnf("transmit.post: %s", err)
		case outcome == OutcomeRejected:
			log.Warnf("transmit.post: endpoint rejected submission")
		default:
			log.Debugf("transmit.post: %s", outcome)
		}
		if t.OnResult != nil {
			t.OnResult(outcome)
		}
	}()
}

func (t *FormTransmitter) post(p model.Payload) (Outcome, error) {
	values, err := form.EncodeToValues(p)
	if err != nil {
		return OutcomeFailed, errors.Wrap(err, "encode payload")
	}

	ctx := context.Background()
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, strings.NewReader(values.Encode()))
	if err != nil {
		return OutcomeFailed, errors.Wrap(err, "new request")
	}
	req.Header.Set("content-type", "application/x-www-form-urlencoded")

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return OutcomeFailed, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return OutcomeRejected, nil
	}
	return OutcomeDelivered, nil
}

// InFlight is the number of dispatches that have not finished yet.
func (t *FormTransmitter) InFlight() int64 {
	return t.inFlight.Load()
}

// Wait blocks until every dispatch started so far has finished.
func (t *FormTransmitter) Wait() {
	t.wg.Wait()
}
