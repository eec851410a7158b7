package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arborlab/arbor"
	"github.com/arborlab/arbor/internal/logging"
	"github.com/arborlab/arbor/pkg/adapters/httpapi"
	"github.com/arborlab/arbor/pkg/adapters/memory"
	redisstore "github.com/arborlab/arbor/pkg/adapters/redis"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [tree-file]",
	Short: "Start the HTTP API server",
	Long: `Starts the Arbor engine behind a JSON API over HTTP: tree validation and
publishing for editors, node lookup and next-node resolution for pipelines,
trail storage, and Prometheus metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		redisDB, _ := cmd.Flags().GetInt("redis-db")
		trailTTL, _ := cmd.Flags().GetDuration("trail-ttl")

		treePath, _ := cmd.Flags().GetString("tree")
		if !cmd.Flags().Changed("tree") && len(args) > 0 {
			treePath = args[0]
		}
		levelStr, _ := cmd.Flags().GetString("log-level")
		logger := logging.New(logging.ParseLevel(levelStr))

		var trailOpt arbor.Option
		if redisAddr != "" {
			store := redisstore.New(redisAddr, os.Getenv("ARBOR_REDIS_PASSWORD"), redisDB,
				redisstore.WithTTL(trailTTL))
			defer store.Close()
			trailOpt = arbor.WithTrailStore(store)
		} else {
			trailOpt = arbor.WithTrailStore(memory.NewStore())
		}

		eng, err := arbor.New(treePath, arbor.WithLogger(logger), trailOpt)
		if err != nil {
			fmt.Printf("Error initializing arbor: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: httpapi.NewHandler(eng, logger),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Arbor Server on %s\n", srv.Addr)
			fmt.Printf("Serving tree from: %s\n", treePath)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Arbor Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for trail storage (empty = in-memory)")
	serveCmd.Flags().Int("redis-db", 0, "Redis database number")
	serveCmd.Flags().Duration("trail-ttl", 0, "Expiration for stored trails (0 = keep forever)")
}
