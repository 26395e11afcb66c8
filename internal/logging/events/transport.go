package events

import "github.com/atomicstack/gametools-console/internal/logging"

type TransportTracer struct{}

var Transport = TransportTracer{}

func (TransportTracer) Dial(url string) {
	logging.Trace("transport.dial", map[string]interface{}{"url": url})
}

func (TransportTracer) Open(url string) {
	logging.Trace("transport.open", map[string]interface{}{"url": url})
}

func (TransportTracer) Close(url string, err error) {
	payload := map[string]interface{}{"url": url}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("transport.close", payload)
}

func (TransportTracer) Frame(size int) {
	logging.Trace("transport.frame", map[string]interface{}{"size": size})
}

func (TransportTracer) Drop(size int) {
	logging.Trace("transport.drop", map[string]interface{}{"size": size})
}
