package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dealerdesk/dealerdesk/internal/domain"
	"github.com/dealerdesk/dealerdesk/internal/domain/dealership"
	"github.com/dealerdesk/dealerdesk/internal/domain/vehicle"
	"github.com/dealerdesk/dealerdesk/internal/port/database"
	"github.com/dealerdesk/dealerdesk/internal/port/messagequeue"
	"github.com/dealerdesk/dealerdesk/internal/query"
)

// exportPageSize is how many vehicles each store read fetches while
// building a snapshot.
const exportPageSize = 500

// ExportService runs marketing-sync jobs: each job snapshots a dealership's
// full inventory to a JSON file for downstream marketing systems. Jobs
// arrive through the queue so API calls return before the export runs.
type ExportService struct {
	store database.Store
	queue messagequeue.Queue
	dir   string
}

// NewExportService creates a new ExportService writing snapshots under dir.
func NewExportService(store database.Store, queue messagequeue.Queue, dir string) *ExportService {
	return &ExportService{store: store, queue: queue, dir: dir}
}

// Enqueue publishes a sync job for the tenant and returns its job ID.
func (s *ExportService) Enqueue(ctx context.Context, tenant, message string) (string, error) {
	job := messagequeue.SyncJobPayload{
		JobID:        uuid.NewString(),
		DealershipID: tenant,
		Message:      message,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("marshal sync job: %w", err)
	}
	if err := s.queue.Publish(ctx, messagequeue.SubjectMarketingSync, data); err != nil {
		return "", fmt.Errorf("publish sync job: %w", err)
	}

	slog.InfoContext(ctx, "sync job queued", "job_id", job.JobID, "dealership_id", tenant)
	return job.JobID, nil
}

// Start subscribes to the sync subject and processes jobs until the returned
// cancel function runs.
func (s *ExportService) Start(ctx context.Context) (cancel func(), err error) {
	return s.queue.Subscribe(ctx, messagequeue.SubjectMarketingSync, func(msgCtx context.Context, _ string, data []byte) error {
		var job messagequeue.SyncJobPayload
		if err := json.Unmarshal(data, &job); err != nil {
			// An unparsable message will never parse on redelivery.
			slog.ErrorContext(msgCtx, "dropping undecodable sync job", "error", err)
			return nil
		}
		return s.ProcessSyncJob(msgCtx, job)
	})
}

// exportSnapshot is the file schema consumed by marketing systems.
type exportSnapshot struct {
	JobID       string                `json:"job_id"`
	Dealership  dealership.Dealership `json:"dealership"`
	Vehicles    []vehicle.Vehicle     `json:"vehicles"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// ProcessSyncJob writes the dealership's inventory snapshot to disk. A
// returned error makes the transport redeliver the job; permanent failures
// (unknown dealership) are logged and swallowed so they do not loop forever.
func (s *ExportService) ProcessSyncJob(ctx context.Context, job messagequeue.SyncJobPayload) error {
	d, err := s.store.GetDealership(ctx, job.DealershipID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.ErrorContext(ctx, "dropping sync job for unknown dealership",
				"job_id", job.JobID, "dealership_id", job.DealershipID)
			return nil
		}
		return fmt.Errorf("load dealership %s: %w", job.DealershipID, err)
	}

	vehicles, err := s.collectVehicles(ctx, job.DealershipID)
	if err != nil {
		return fmt.Errorf("collect vehicles for %s: %w", job.DealershipID, err)
	}

	snapshot := exportSnapshot{
		JobID:       job.JobID,
		Dealership:  *d,
		Vehicles:    vehicles,
		GeneratedAt: time.Now().UTC(),
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%s_marketing_sync_%d.json", job.DealershipID, time.Now().Unix()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	slog.InfoContext(ctx, "sync job completed",
		"job_id", job.JobID, "dealership_id", job.DealershipID, "vehicles", len(vehicles), "path", path)
	return nil
}

// collectVehicles pages through the tenant's full live inventory.
func (s *ExportService) collectVehicles(ctx context.Context, tenant string) ([]vehicle.Vehicle, error) {
	var all []vehicle.Vehicle
	for page := 1; ; page++ {
		plan, err := query.Build(tenant, query.Params{Page: page, Limit: exportPageSize}, query.Config{})
		if err != nil {
			return nil, err
		}
		rows, total, err := s.store.ListVehicles(ctx, plan)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
		if len(all) >= total || len(rows) == 0 {
			return all, nil
		}
	}
}
