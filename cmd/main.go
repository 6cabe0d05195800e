// Copyright 2026 AWS Cost Protection Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Main entrypoint for the cost governor. The binary picks its mode at
// startup:
//
//   - Lambda mode when AWS_LAMBDA_FUNCTION_NAME is set: one sweep per
//     invocation behind an API Gateway envelope.
//   - One-shot mode with --one-shot: a single sweep printed to stdout.
//   - Service mode otherwise: periodic sweeps with ops and probe servers.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/exit0-io/aws-cost-protection/internal/cache"
	"github.com/exit0-io/aws-cost-protection/internal/console"
	"github.com/exit0-io/aws-cost-protection/internal/governor"
	"github.com/exit0-io/aws-cost-protection/internal/handler"
	"github.com/exit0-io/aws-cost-protection/internal/server"
	"github.com/exit0-io/aws-cost-protection/pkg/aws"
	"github.com/exit0-io/aws-cost-protection/pkg/config"
	"github.com/exit0-io/aws-cost-protection/pkg/cost"
	"github.com/exit0-io/aws-cost-protection/pkg/metrics"
)

func main() {
	var configFile string
	var metricsAddr string
	var probeAddr string
	var oneShot bool
	var pretty bool
	flag.StringVar(&configFile, "config", "",
		"Path to the governor configuration file. Empty means environment variables only. "+
			"Can be overridden with the GOVERNOR_CONFIG_PATH environment variable.")
	flag.StringVar(&metricsAddr, "metrics-bind-address", "",
		"The address the metrics and ops endpoint binds to. Overrides metricsBindAddress from the configuration.")
	flag.StringVar(&probeAddr, "health-probe-bind-address", "",
		"The address the probe endpoint binds to. Overrides healthProbeBindAddress from the configuration.")
	flag.BoolVar(&oneShot, "one-shot", false,
		"Run a single governance sweep, print the report to stdout, and exit.")
	flag.BoolVar(&pretty, "pretty", false,
		"Render the one-shot report as a table instead of JSON. Implies --one-shot.")
	flag.Parse()

	// Allow environment variable to override config file path
	if envConfigPath := os.Getenv("GOVERNOR_CONFIG_PATH"); envConfigPath != "" {
		configFile = envConfigPath
	}

	log := newLogger("info")
	setupLog := log.WithName("setup")

	// A missing config file is not an error; Lambda and most container
	// deployments configure through the environment alone.
	if configFile != "" {
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			setupLog.Info("config file not found, using environment only", "config_file", configFile)
			configFile = ""
		}
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		setupLog.Error(err, "failed to load configuration", "config_file", configFile)
		os.Exit(1)
	}
	if cfg.LogLevel != "" && cfg.LogLevel != "info" {
		log = newLogger(cfg.LogLevel)
		setupLog = log.WithName("setup")
	}
	setupLog.Info("loaded configuration",
		"regions", cfg.Regions(),
		"sweep_interval", cfg.GetSweepInterval().String(),
		"log_level", cfg.LogLevel)

	switch {
	case os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "":
		setupLog.Info("starting in Lambda mode")
		runLambda(cfg, log)
	case oneShot || pretty:
		if err := runOneShot(cfg, log, pretty); err != nil {
			setupLog.Error(err, "one-shot sweep failed")
			os.Exit(1)
		}
	default:
		setupLog.Info("starting in service mode")
		if err := runServe(cfg, metricsAddr, probeAddr, log); err != nil {
			setupLog.Error(err, "service mode failed")
			os.Exit(1)
		}
	}
}

// runLambda serves one sweep per invocation. Sweep failures surface inside
// the report body, never as an invocation error, so upstream retry policies
// cannot re-run actions that already happened.
func runLambda(cfg *config.Config, log logr.Logger) {
	ctx := context.Background()
	m := metrics.NewMetrics(prometheus.NewRegistry())

	g, _, err := newGovernor(ctx, cfg, m, log)
	if err != nil {
		log.Error(err, "failed to initialize Lambda mode")
		os.Exit(1)
	}

	lambda.Start(handler.NewHandler(g, log.WithName("handler")).Handle)
}

// runOneShot runs a single sweep and prints the report to stdout, as JSON by
// default or as a table with --pretty.
func runOneShot(cfg *config.Config, log logr.Logger, pretty bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := metrics.NewMetrics(prometheus.NewRegistry())
	defer m.Stop()

	g, _, err := newGovernor(ctx, cfg, m, log)
	if err != nil {
		return err
	}

	report := g.Sweep(ctx)
	if pretty {
		console.Render(os.Stdout, report)
		return nil
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// runServe runs periodic sweeps with the ops and probe servers attached.
// Blocks until SIGINT or SIGTERM, then drains both servers.
func runServe(cfg *config.Config, metricsAddr, probeAddr string, log logr.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	setupLog := log.WithName("setup")
	if metricsAddr == "" {
		metricsAddr = cfg.MetricsBindAddress
	}
	if probeAddr == "" {
		probeAddr = cfg.HealthProbeBindAddress
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)
	defer m.Stop()

	g, awsClient, err := newGovernor(ctx, cfg, m, log)
	if err != nil {
		return err
	}
	setupLog.Info("created AWS client")

	// Verify region access before the first sweep. Credential propagation
	// after a deploy is the usual transient startup failure, so this check
	// retries with backoff rather than crash-looping the pod.
	validator := aws.NewRegionValidator(awsClient)
	regions := cfg.Regions()
	if len(regions) > 0 {
		check := func() error {
			return validator.ValidateRegionAccess(ctx, aws.RegionConfig{Region: regions[0]})
		}
		if err := governor.RetryWithBackoff(ctx, governor.DefaultRetryConfig(), log, "startup region access check", check); err != nil {
			return err
		}
		setupLog.Info("verified region access", "region", regions[0])
	}

	// The monitor runs background access checks so readiness probes read a
	// cached status instead of calling AWS on every probe.
	regionConfigs := make([]aws.RegionConfig, 0, len(regions))
	for _, region := range regions {
		regionConfigs = append(regionConfigs, aws.RegionConfig{Region: region})
	}
	credMonitor := aws.NewCredentialMonitor(validator, regionConfigs, cfg.GetCredentialCheckInterval(), log)
	credMonitor.Start()
	defer credMonitor.Stop()
	setupLog.Info("started AWS credential monitor",
		"regions", len(regionConfigs),
		"check_interval", cfg.GetCredentialCheckInterval().String())

	reportCache := cache.NewReportCache()
	g.Reports = reportCache

	opsServer := server.New("ops", metricsAddr, server.NewOpsMux(registry, g, reportCache, log.WithName("ops")), log)
	opsServer.Start()
	probeServer := server.New("probe", probeAddr, server.NewProbeMux(aws.NewHealthChecker(credMonitor)), log)
	probeServer.Start()

	g.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "failed to shut down ops server")
	}
	if err := probeServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "failed to shut down probe server")
	}
	return nil
}

// newGovernor assembles the sweep pipeline shared by every mode. The caller
// owns the metrics lifecycle and, in service mode, attaches the report sink.
func newGovernor(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log logr.Logger) (*governor.Governor, aws.Client, error) {
	awsClient, err := newAWSClient(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create AWS client: %w", err)
	}

	estimator := cost.NewSavingsEstimator(awsClient.Pricing(ctx), cfg.GetSavingsOperatingSystem())
	g := &governor.Governor{
		AWSClient: awsClient,
		Config:    cfg,
		Metrics:   m,
		Estimator: estimator,
		Log:       log.WithName("governor"),
	}
	return g, awsClient, nil
}

// newAWSClient builds the shared AWS client. A configured endpoint override
// routes every service call to that URL.
func newAWSClient(ctx context.Context, cfg *config.Config) (aws.Client, error) {
	clientConfig := aws.ClientConfig{
		DefaultRegion: defaultRegion(cfg),
		AssumeRoleARN: cfg.AssumeRoleARN,
		ExternalID:    cfg.ExternalID,
	}
	if cfg.EndpointURL != "" {
		return aws.NewClientWithEndpoint(ctx, clientConfig, cfg.EndpointURL)
	}
	return aws.NewClient(ctx, clientConfig)
}

// defaultRegion picks the region used for region-independent calls (STS,
// pricing): the first allowed region, or the package default when the sweep
// list is empty.
func defaultRegion(cfg *config.Config) string {
	if regions := cfg.Regions(); len(regions) > 0 {
		return regions[0]
	}
	return config.DefaultRegion
}

// newLogger builds a zapr-wrapped production zap logger at the given level.
// Unknown levels fall back to info.
func newLogger(level string) logr.Logger {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	return zapr.NewLogger(zap.Must(zapConfig.Build()))
}
