package consumer

import "time"

func SetHandlerRetryDelay(d time.Duration) (restore func()) {
	prev := handlerRetryDelay
	handlerRetryDelay = d
	return func() { handlerRetryDelay = prev }
}
