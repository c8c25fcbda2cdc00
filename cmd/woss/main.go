package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/wizardofoss/woss/internal/config"
	"github.com/wizardofoss/woss/internal/infra/database"
	"github.com/wizardofoss/woss/internal/infra/gateway"
	"github.com/wizardofoss/woss/internal/infra/repository"
	"github.com/wizardofoss/woss/internal/present/rest"
	restmw "github.com/wizardofoss/woss/internal/present/rest/middleware"
	"github.com/wizardofoss/woss/internal/service"
	"github.com/wizardofoss/woss/internal/usecase"
	"github.com/wizardofoss/woss/slack"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "woss",
	Short: "Wizard of OSS, a Slack app for logging open-source hours",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the configuration file")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	// A missing .env is fine; it only exists in development.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := cmd.Context()

	if conf.Server.EnableTrace {
		shutdown, err := setupTracer(ctx, conf.Server.TraceEndpoint)
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
		defer shutdown(ctx)
	}

	rdb, err := database.NewRedis(ctx, conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	phrases, err := service.LoadPhrases(conf.App.LoadingMessagesPath)
	if err != nil {
		return fmt.Errorf("failed to load loading phrases: %w", err)
	}

	slackClient := slack.New(conf.Slack.BotToken, conf.Slack.APIBase)
	chat := gateway.NewChatGateway(slackClient)
	prefs := repository.NewPreferenceRepository(rdb)

	submission := usecase.NewSubmissionUsecase(chat, prefs, conf.Slack.ChannelID)
	stats := usecase.NewStatsUsecase(chat, conf.Slack.ChannelID)
	form := usecase.NewFormUsecase(chat, prefs)

	dispatcher := service.NewDispatcher(4, 64)
	defer dispatcher.Shutdown()

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("woss"))
	}

	handler := rest.NewHandler(submission, stats, form, phrases, dispatcher)
	handler.RegisterRoutes(e, restmw.NewSignatureMiddleware(conf.Slack.SigningSecret))

	install := rest.NewInstallHandler(
		slackClient,
		conf.Slack.ClientID,
		conf.Slack.ClientSecret,
		conf.Slack.BotScope,
		conf.Slack.RedirectHost,
	)
	install.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", conf.Server.Port)))

	return nil
}

func setupTracer(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint))
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("woss"),
		)),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
