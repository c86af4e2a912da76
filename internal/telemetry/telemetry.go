package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MeterName is the instrumentation scope of every instrument the server creates
const MeterName = "github.com/indigo-web/workhttp"

// Meter returns the server's meter from the global provider. Until a provider is
// installed via Setup, all the recordings are dropped.
func Meter() metric.Meter {
	return otel.Meter(MeterName)
}

// Noop returns a meter whose instruments record nothing
func Noop() metric.Meter {
	return noop.NewMeterProvider().Meter(MeterName)
}

// Setup installs an SDK meter provider exporting over OTLP/gRPC. The exporter reads its
// endpoint and the rest of the settings from the standard OTEL_EXPORTER_OTLP_* variables.
// The returned function flushes and stops the provider.
func Setup(ctx context.Context, interval time.Duration) (shutdown func(context.Context) error, err error) {
	exporter, err := otlpmetricgrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(interval),
		)),
	)
	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}
