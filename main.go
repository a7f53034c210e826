package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/haneul-labs/shiptrack/internal/server"
	"github.com/haneul-labs/shiptrack/internal/service"
	"github.com/haneul-labs/shiptrack/pkg/tracker"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "shiptrack",
	Short:   "Unified carrier tracking service for domestic and international shipments",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tracking HTTP server",
	RunE:  runServe,
}

var trackCmd = &cobra.Command{
	Use:   "track <carrier> <tracking-number>",
	Short: "Look up one tracking number and print the result as JSON",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrack,
}

var shipmentsCmd = &cobra.Command{
	Use:   "shipments",
	Short: "List recent account shipments for a carrier",
	RunE:  runShipments,
}

var (
	shipmentsCarrier string
	shipmentsDays    int
)

func init() {
	shipmentsCmd.Flags().StringVar(&shipmentsCarrier, "carrier", string(tracker.CarrierFedEx), "carrier code")
	shipmentsCmd.Flags().IntVar(&shipmentsDays, "days", 30, "how many days back to list")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(shipmentsCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracer, tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(ctx)
	}

	registry := initTrackerRegistry(cfg, logger, tracer)
	lookup := initLookup(cfg, registry, logger, tracer)

	logger.Info("Starting shiptrack",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
	)

	srv := server.New(server.Config{Port: cfg.Port}, lookup, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runTrack(cmd *cobra.Command, args []string) error {
	lookup, logger, err := initCLILookup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	result, err := lookup.Track(cmd.Context(), tracker.Carrier(args[0]), args[1])
	if err != nil {
		return err
	}
	if err := printJSON(cmd, result); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "상태: %s\n", tracker.StatusText(result.Status))
	return nil
}

func runShipments(cmd *cobra.Command, args []string) error {
	lookup, logger, err := initCLILookup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	list, err := lookup.ListShipments(cmd.Context(), tracker.Carrier(shipmentsCarrier), shipmentsDays)
	if err != nil {
		return err
	}
	if !list.Success {
		fmt.Fprintln(cmd.OutOrStdout(), list.Error)
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "운송장번호\t상태\t발송일\t도착예정일\t출발지\t도착지")
	for _, s := range list.Shipments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.TrackingNumber,
			tracker.StatusText(s.Status),
			s.ShipDate,
			s.EstimatedDelivery,
			s.OriginCity,
			s.DestinationCity,
		)
	}
	return tw.Flush()
}

// initCLILookup builds a lookup service for one-shot commands: no cache,
// no metrics, no tracer.
func initCLILookup() (*service.Lookup, *otelzap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	registry := initTrackerRegistry(cfg, logger, nil)
	return service.New(registry, nil, 0, logger, nil, nil), logger, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
