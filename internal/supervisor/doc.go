// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package supervisor provides process supervision for Folio using suture v4.

The tree has two layers:

	RootSupervisor ("folio")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── StatsService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with backoff once FailureThreshold is
exceeded. Supervisor events (terminations, panics, backoff) are logged via
sutureslog through the zerolog slog bridge in internal/logging.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMaintenanceService(services.NewStatsService(engine, services.StatsServiceConfig{}, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
