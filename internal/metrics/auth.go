package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AuthMetrics records authentication gateway metrics: federated login outcomes
// and credential verification results.
type AuthMetrics struct {
	loginCounter      metric.Int64Counter
	credentialCounter metric.Int64Counter
}

// NewAuthMetrics creates authentication metric instruments using the provided
// meter provider. The namespace parameter is used as a prefix for all metric
// names (e.g., "stockbar").
func NewAuthMetrics(meterProvider metric.MeterProvider, namespace string) (*AuthMetrics, error) {
	meter := meterProvider.Meter(namespace)

	loginCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_logins_total", namespace),
		metric.WithDescription("Total number of federated login attempts"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create login counter: %w", err)
	}

	credentialCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_credential_checks_total", namespace),
		metric.WithDescription("Total number of credential verifications"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential counter: %w", err)
	}

	return &AuthMetrics{
		loginCounter:      loginCounter,
		credentialCounter: credentialCounter,
	}, nil
}

// RecordLogin increments the login counter with provider and result labels.
// Result examples: "success", "denied", "failed", "state_mismatch".
func (m *AuthMetrics) RecordLogin(ctx context.Context, provider, result string) {
	m.loginCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("result", result),
		),
	)
}

// RecordCredentialCheck increments the credential counter with scheme and
// result labels. Scheme examples: "bearer", "session".
func (m *AuthMetrics) RecordCredentialCheck(ctx context.Context, scheme, result string) {
	m.credentialCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("scheme", scheme),
			attribute.String("result", result),
		),
	)
}
