package poll

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// WSSource implements Source over a websocket: every frame pushed by
// the server becomes one refresh signal. Call sites built against
// IntervalSource work unchanged.
type WSSource struct {
	URL    string
	Token  func() string
	Dialer *websocket.Dialer
	Log    Logger
}

func (s *WSSource) Subscribe(ctx context.Context, onSignal func()) (func(), error) {
	dialer := s.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	header := http.Header{}
	if s.Token != nil {
		if token := s.Token(); token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	conn, resp, err := dialer.DialContext(ctx, s.URL, header)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			conn.Close()
		})
	}

	go func() {
		defer stop()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				select {
				case <-done:
				default:
					if s.Log != nil {
						s.Log.Errorf("poll: websocket closed: %v", err)
					}
				}
				return
			}
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			default:
			}
			onSignal()
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			stop()
		case <-done:
		}
	}()

	return stop, nil
}
