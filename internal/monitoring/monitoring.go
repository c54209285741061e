package monitoring

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	LayerService  = "services"
	LayerDelivery = "deliveries"
	LayerEngine   = "engine"
	LayerUnknown  = "unknown"
)

type Monitor struct {
	ctx         context.Context
	segmentName string

	// layer is which this struct places, is it in engine, delivery, or service
	layer string

	start time.Time

	// add observability here
	segment *newrelic.Segment
}

type initOptions struct {
	layer       string
	segmentName string
}

type InitOption func(*initOptions)

func WithLayer(layer string) InitOption {
	return func(o *initOptions) {
		o.layer = layer
	}
}

func WithSegmentName(segmentName string) InitOption {
	return func(o *initOptions) {
		o.segmentName = segmentName
	}
}

func New(ctx context.Context, opts ...InitOption) *Monitor {
	fOpts := &initOptions{}
	for _, opt := range opts {
		opt(fOpts)
	}

	if fOpts.segmentName == "" {
		// WARNING: don't refactor lines below, it will break the segment name
		pc, file, _, ok := runtime.Caller(1)
		if !ok {
			pc = 0
		}

		var segmentName string

		fn := runtime.FuncForPC(pc)
		if fn != nil {
			segmentName = getSegmentName(fn.Name())
		} else {
			segmentName = "unknown"
		}

		fOpts.segmentName = segmentName

		if strings.Contains(file, LayerService) {
			fOpts.layer = LayerService
		} else if strings.Contains(file, LayerDelivery) {
			fOpts.layer = LayerDelivery
		} else if strings.Contains(file, LayerEngine) {
			fOpts.layer = LayerEngine
		}
	}

	if fOpts.layer == "" {
		fOpts.layer = LayerUnknown
	}

	m := &Monitor{
		ctx:         ctx,
		segmentName: fOpts.segmentName,
		layer:       fOpts.layer,
		start:       time.Now(),
	}

	if txn := newrelic.FromContext(ctx); txn != nil {
		m.segment = txn.StartSegment(fOpts.segmentName)
	}

	return m
}

// getSegmentName trims a fully qualified function name down to package.Method.
func getSegmentName(fnName string) string {
	parts := strings.Split(fnName, "/")
	return parts[len(parts)-1]
}
