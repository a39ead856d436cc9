package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/schoolhub/pix/api"
	"github.com/schoolhub/pix/brcode"
	"github.com/schoolhub/pix/config"
	"github.com/schoolhub/pix/store"
)

var version = "v0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "schoolhub-pix",
		Short: "PIX BR Code service for School Hub",
	}

	// --- serve command -------------------------------------------------------
	var configPath string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the PIX code HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	root.AddCommand(serveCmd)

	// --- encode command ------------------------------------------------------
	var encOpts chargeOptions
	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Print a BR Code payload to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runEncode(&encOpts)
			if err != nil {
				return err
			}
			fmt.Println(code)
			return nil
		},
	}
	encOpts.register(encodeCmd)
	root.AddCommand(encodeCmd)

	// --- qr command ----------------------------------------------------------
	var qrOpts chargeOptions
	var qrOut string
	var qrSize int
	qrCmd := &cobra.Command{
		Use:   "qr",
		Short: "Write a BR Code QR image to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runEncode(&qrOpts)
			if err != nil {
				return err
			}
			png, err := brcode.RenderPNG(code, qrSize)
			if err != nil {
				return err
			}
			if err := os.WriteFile(qrOut, png, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", qrOut, err)
			}
			fmt.Printf("wrote %s (%d bytes)\n", qrOut, len(png))
			return nil
		},
	}
	qrOpts.register(qrCmd)
	qrCmd.Flags().StringVarP(&qrOut, "out", "o", "pix.png", "Output PNG path")
	qrCmd.Flags().IntVar(&qrSize, "size", 512, "Image size in pixels")
	root.AddCommand(qrCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("schoolhub-pix %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// chargeOptions are the flags shared by the encode and qr one-shot commands.
type chargeOptions struct {
	configPath  string
	amount      string
	description string
	txid        string
	key         string
}

func (o *chargeOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "config.yaml", "Path to config file")
	cmd.Flags().StringVar(&o.amount, "amount", "", "Charge amount (e.g. 25.00), empty for a static code")
	cmd.Flags().StringVar(&o.description, "description", "", "Charge description (max 25 chars)")
	cmd.Flags().StringVar(&o.txid, "txid", "", "Transaction id (max 25 alphanumeric chars)")
	cmd.Flags().StringVar(&o.key, "key", "", "PIX key overriding the configured one")
}

// runEncode builds one BR Code from the configured merchant and the
// command-line flags.
func runEncode(o *chargeOptions) (string, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}

	charge := brcode.Charge{
		Description: o.description,
		TxID:        o.txid,
		KeyOverride: o.key,
	}
	if o.amount != "" {
		amt, err := decimal.NewFromString(o.amount)
		if err != nil {
			return "", fmt.Errorf("invalid amount %q: %w", o.amount, err)
		}
		charge.Amount = amt
	}

	m := cfg.Merchant
	enc := brcode.NewEncoder(brcode.NewMerchant(m.Key, m.Name, m.City))
	return enc.Encode(charge)
}

// runServe is the main service entrypoint that wires all components together.
func runServe(configPath string) error {
	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}

	// 2. Setup logger
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)

	log.Info("starting schoolhub-pix", "version", version, "port", cfg.Port, "data_dir", cfg.DataDir)

	// 3. Open charge log
	dbPath := filepath.Join(cfg.DataDir, "charges.db")
	chargeLog, err := store.NewChargeLog(dbPath)
	if err != nil {
		return fmt.Errorf("open charge log: %w", err)
	}
	defer chargeLog.Close()

	// 4. Create encoder
	m := cfg.Merchant
	encoder := brcode.NewEncoder(brcode.NewMerchant(m.Key, m.Name, m.City))
	merchantKey := encoder.Merchant().Key
	log.Info("merchant configured",
		"key_kind", string(merchantKey.Kind),
		"name", encoder.Merchant().Name,
		"city", encoder.Merchant().City,
	)
	if merchantKey.Kind == brcode.KeyUnrecognized {
		log.Warn("merchant key did not match any known PIX key shape", "key", merchantKey.Raw)
	}

	// 5. Start HTTP server
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewRouter(&api.Server{
			Encoder:   encoder,
			Store:     chargeLog,
			Log:       log,
			Version:   version,
			QRSize:    cfg.QRSize,
			StartTime: time.Now(),
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("service is running", "view_url", fmt.Sprintf("http://localhost:%d/view", cfg.Port))

	// 6. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("goodbye")
	return nil
}
