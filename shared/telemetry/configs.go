package telemetry

// GatewayServiceConfig is the telemetry configuration for the payment gateway
var GatewayServiceConfig = Config{
	ServiceName:    "gateway-service",
	ServiceVersion: "1.0.0",
}

// WithOTLPEndpoint sets the OTLP endpoint for a config
func (c Config) WithOTLPEndpoint(endpoint string) Config {
	c.OTLPEndpoint = endpoint
	return c
}
