package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dto "task-manager-system.com/task-manager-system/internal/data_models"
	apperrors "task-manager-system.com/task-manager-system/internal/errors"
	repository "task-manager-system.com/task-manager-system/internal/repositories"
	"task-manager-system.com/task-manager-system/internal/storage"
	"task-manager-system.com/task-manager-system/pkg/constants"
	model "task-manager-system.com/task-manager-system/pkg/models"
)

// fakeStorage stands in for the object store. It applies the same
// validation policy as the real adapter so policy rejections can be
// asserted to short-circuit before any upload.
type fakeStorage struct {
	uploads    int
	deleted    []string
	failUpload bool
}

func (f *fakeStorage) Upload(ctx context.Context, reader io.Reader, size int64, taskID uint, filename, mimeType string) (*storage.UploadResult, error) {
	if err := storage.ValidateFile(size, filename, mimeType); err != nil {
		return nil, err
	}
	if f.failUpload {
		return nil, errors.New("connection refused")
	}

	f.uploads++
	key := fmt.Sprintf("tasks/%d/%d-%s", taskID, time.Now().UnixMilli(), filename)
	return &storage.UploadResult{
		URL:      "http://127.0.0.1:9000/task-files/" + key,
		Filename: filename,
		Size:     size,
		MimeType: mimeType,
		Key:      key,
	}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	// A private in-memory database per test; the single connection
	// keeps it alive and isolated.
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&model.User{}, &model.Task{}, &model.AuditLog{})
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func newTaskFixture(t *testing.T) (*TaskService, *AuditService, *fakeStorage) {
	db := setupTestDB(t)
	store := &fakeStorage{}
	audit := NewAuditService(repository.NewAuditRepository(db))
	tasks := NewTaskService(repository.NewTaskRepository(db), audit, store)
	return tasks, audit, store
}

func createReq(title string) dto.CreateTaskRequest {
	return dto.CreateTaskRequest{
		Title:        title,
		Description:  "a sufficiently long description",
		DeliveryDate: time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC),
	}
}

func mustAuditActions(t *testing.T, audit *AuditService, taskID uint) []constants.AuditAction {
	t.Helper()
	entries, err := audit.ListByTask(context.Background(), taskID)
	if err != nil {
		t.Fatalf("failed to list audit entries: %v", err)
	}
	actions := make([]constants.AuditAction, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	return actions
}

func TestCreateTask_DefaultsAndAudit(t *testing.T) {
	tasks, audit, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := tasks.Create(ctx, createReq("Write docs"), "owner-1")
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if task.Status != constants.StatusPending {
		t.Errorf("expected default status %s, got %s", constants.StatusPending, task.Status)
	}
	if task.IsPublic {
		t.Error("expected task to default to private")
	}
	if task.OwnerID != "owner-1" {
		t.Errorf("expected owner owner-1, got %s", task.OwnerID)
	}

	actions := mustAuditActions(t, audit, task.ID)
	if len(actions) != 1 || actions[0] != constants.ActionCreateTask {
		t.Errorf("expected exactly one CREATE_TASK entry, got %v", actions)
	}
}

func TestGetTask_Visibility(t *testing.T) {
	tasks, _, _ := newTaskFixture(t)
	ctx := context.Background()

	private, _ := tasks.Create(ctx, createReq("Private task"), "alice")
	public, err := tasks.Create(ctx, dto.CreateTaskRequest{
		Title:        "Public task",
		Description:  "visible to everyone who is logged in",
		DeliveryDate: time.Now().Add(24 * time.Hour),
		IsPublic:     true,
	}, "alice")
	if err != nil {
		t.Fatalf("failed to create public task: %v", err)
	}

	if _, err := tasks.Get(ctx, private.ID, "alice"); err != nil {
		t.Errorf("owner should see own private task: %v", err)
	}
	if _, err := tasks.Get(ctx, private.ID, "bob"); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected forbidden for non-owner on private task, got %v", err)
	}
	if _, err := tasks.Get(ctx, private.ID, ""); err != nil {
		t.Errorf("system access should bypass the visibility check: %v", err)
	}
	if _, err := tasks.Get(ctx, public.ID, "bob"); err != nil {
		t.Errorf("anyone should see a public task: %v", err)
	}
	if _, err := tasks.Get(ctx, 9999, "alice"); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected not found for unknown id, got %v", err)
	}
}

func TestUpdateTask_Authorization(t *testing.T) {
	tasks, audit, _ := newTaskFixture(t)
	ctx := context.Background()

	private, _ := tasks.Create(ctx, createReq("Private task"), "alice")

	newTitle := "Renamed by intruder"
	if _, err := tasks.Update(ctx, private.ID, dto.UpdateTaskRequest{Title: &newTitle}, "bob"); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner update, got %v", err)
	}

	ownerTitle := "Renamed by owner"
	updated, err := tasks.Update(ctx, private.ID, dto.UpdateTaskRequest{Title: &ownerTitle}, "alice")
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Title != ownerTitle {
		t.Errorf("expected title %q, got %q", ownerTitle, updated.Title)
	}
	if updated.OwnerID != "alice" {
		t.Errorf("owner must be immutable, got %s", updated.OwnerID)
	}

	// Public tasks are editable by any authenticated caller.
	makePublic := true
	if _, err := tasks.Update(ctx, private.ID, dto.UpdateTaskRequest{IsPublic: &makePublic}, "alice"); err != nil {
		t.Fatalf("failed to publish task: %v", err)
	}
	bobTitle := "Edited by bob"
	if _, err := tasks.Update(ctx, private.ID, dto.UpdateTaskRequest{Title: &bobTitle}, "bob"); err != nil {
		t.Errorf("any authenticated caller should update a public task: %v", err)
	}

	actions := mustAuditActions(t, audit, private.ID)
	updates := 0
	for _, a := range actions {
		if a == constants.ActionUpdateTask {
			updates++
		}
	}
	if updates != 3 {
		t.Errorf("expected 3 UPDATE_TASK entries, got %d (%v)", updates, actions)
	}
}

func TestRemoveTask(t *testing.T) {
	tasks, audit, store := newTaskFixture(t)
	ctx := context.Background()

	task, _ := tasks.Create(ctx, createReq("Disposable"), "alice")

	if _, err := tasks.Remove(ctx, task.ID, "bob"); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner delete, got %v", err)
	}

	result, err := tasks.AttachFile(ctx, task.ID, bytes.NewReader([]byte("%PDF-")), 5, "doc.pdf", "application/pdf", "alice")
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	message, err := tasks.Remove(ctx, task.ID, "alice")
	if err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if message == "" {
		t.Error("expected a confirmation message")
	}

	if _, err := tasks.Get(ctx, task.ID, "alice"); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected task to be gone, got %v", err)
	}

	if len(store.deleted) != 1 || store.deleted[0] != result.Key {
		t.Errorf("expected attachment %s to be deleted, got %v", result.Key, store.deleted)
	}

	actions := mustAuditActions(t, audit, task.ID)
	found := false
	for _, a := range actions {
		if a == constants.ActionDeleteTask {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a DELETE_TASK entry, got %v", actions)
	}
}

func TestListTasks_Visibility(t *testing.T) {
	tasks, _, _ := newTaskFixture(t)
	ctx := context.Background()

	tasks.Create(ctx, createReq("Alice private 1"), "alice")
	tasks.Create(ctx, createReq("Alice private 2"), "alice")
	tasks.Create(ctx, dto.CreateTaskRequest{
		Title:        "Alice public",
		Description:  "shared with the whole team",
		DeliveryDate: time.Now().Add(time.Hour),
		IsPublic:     true,
	}, "alice")
	tasks.Create(ctx, createReq("Bob private"), "bob")

	result, err := tasks.List(ctx, "bob", repository.TaskFilter{}, repository.Pagination{Page: 1, Limit: 10}, repository.Sort{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if result.Total != 2 {
		t.Fatalf("expected bob to see 2 tasks, got %d", result.Total)
	}
	for _, task := range result.Data {
		if task.OwnerID != "bob" && !task.IsPublic {
			t.Errorf("listing leaked a private task of %s: %q", task.OwnerID, task.Title)
		}
	}
}

func TestListTasks_Pagination(t *testing.T) {
	tasks, _, _ := newTaskFixture(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		tasks.Create(ctx, createReq(fmt.Sprintf("Task %d", i)), "alice")
	}

	result, err := tasks.List(ctx, "alice", repository.TaskFilter{}, repository.Pagination{Page: 1, Limit: 2}, repository.Sort{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 5 {
		t.Errorf("expected total 5, got %d", result.Total)
	}
	if result.TotalPages != 3 {
		t.Errorf("expected ceil(5/2)=3 pages, got %d", result.TotalPages)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected 2 items on first page, got %d", len(result.Data))
	}

	beyond, err := tasks.List(ctx, "alice", repository.TaskFilter{}, repository.Pagination{Page: 4, Limit: 2}, repository.Sort{})
	if err != nil {
		t.Fatalf("list past the end failed: %v", err)
	}
	if len(beyond.Data) != 0 {
		t.Errorf("expected empty page past the end, got %d items", len(beyond.Data))
	}
	if beyond.Total != 5 {
		t.Errorf("total must not change past the end, got %d", beyond.Total)
	}
}

func TestListTasks_UnknownOrderByFallsBack(t *testing.T) {
	tasks, _, _ := newTaskFixture(t)
	ctx := context.Background()

	tasks.Create(ctx, createReq("Only task"), "alice")

	result, err := tasks.List(
		ctx,
		"alice",
		repository.TaskFilter{},
		repository.Pagination{Page: 1, Limit: 10},
		repository.Sort{OrderBy: "password_hash; DROP TABLE tasks"},
	)
	if err != nil {
		t.Fatalf("unknown orderBy must not error: %v", err)
	}
	if result.Sorting.OrderBy != "createdAt" {
		t.Errorf("expected fallback to createdAt, got %s", result.Sorting.OrderBy)
	}
	if len(result.Data) != 1 {
		t.Errorf("expected 1 task, got %d", len(result.Data))
	}
}

func TestListTasks_Filters(t *testing.T) {
	tasks, _, _ := newTaskFixture(t)
	ctx := context.Background()

	done := createReq("Done task")
	done.Status = constants.StatusDone
	done.Tags = []string{"backend", "urgent"}
	tasks.Create(ctx, done, "alice")

	open := createReq("Open task")
	open.Status = constants.StatusOpen
	open.Tags = []string{"frontend"}
	tasks.Create(ctx, open, "alice")

	byStatus, err := tasks.List(ctx, "alice", repository.TaskFilter{Status: constants.StatusDone}, repository.Pagination{Page: 1, Limit: 10}, repository.Sort{})
	if err != nil {
		t.Fatalf("status filter failed: %v", err)
	}
	if byStatus.Total != 1 || byStatus.Data[0].Title != "Done task" {
		t.Errorf("expected only the DONE task, got total=%d", byStatus.Total)
	}

	// Only the first supplied tag participates in matching.
	byTag, err := tasks.List(ctx, "alice", repository.TaskFilter{Tags: []string{"backend", "frontend"}}, repository.Pagination{Page: 1, Limit: 10}, repository.Sort{})
	if err != nil {
		t.Fatalf("tag filter failed: %v", err)
	}
	if byTag.Total != 1 || byTag.Data[0].Title != "Done task" {
		t.Errorf("expected first-tag match only, got total=%d", byTag.Total)
	}
}

func TestTagsRoundTrip(t *testing.T) {
	tasks, _, _ := newTaskFixture(t)
	ctx := context.Background()

	req := createReq("Tagged")
	req.Tags = []string{"a", "b"}
	created, err := tasks.Create(ctx, req, "alice")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	reread, err := tasks.Get(ctx, created.ID, "alice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(reread.Tags) != 2 || reread.Tags[0] != "a" || reread.Tags[1] != "b" {
		t.Errorf("expected ordered tags [a b], got %v", reread.Tags)
	}
}

func TestAttachFile(t *testing.T) {
	tasks, audit, store := newTaskFixture(t)
	ctx := context.Background()

	task, _ := tasks.Create(ctx, createReq("With attachment"), "alice")

	// Oversized payloads are refused before any object-store write.
	_, err := tasks.AttachFile(ctx, task.ID, bytes.NewReader(nil), 6*1024*1024, "big.pdf", "application/pdf", "alice")
	if apperrors.StatusCode(err) != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413 for oversized file, got %v", err)
	}
	if store.uploads != 0 {
		t.Fatalf("oversized file must not reach the store, got %d uploads", store.uploads)
	}

	// A spoofed MIME type does not bypass the extension check.
	_, err = tasks.AttachFile(ctx, task.ID, bytes.NewReader(nil), 100, "payload.exe", "image/png", "alice")
	if apperrors.StatusCode(err) != http.StatusBadRequest {
		t.Errorf("expected 400 for bad extension, got %v", err)
	}
	if store.uploads != 0 {
		t.Fatalf("rejected file must not reach the store, got %d uploads", store.uploads)
	}

	_, err = tasks.AttachFile(ctx, task.ID, bytes.NewReader(nil), 100, "doc.pdf", "application/pdf", "bob")
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected forbidden for non-owner upload, got %v", err)
	}

	result, err := tasks.AttachFile(ctx, task.ID, bytes.NewReader([]byte("%PDF-")), 4*1024*1024, "report.pdf", "application/pdf", "alice")
	if err != nil {
		t.Fatalf("valid upload failed: %v", err)
	}

	reread, _ := tasks.Get(ctx, task.ID, "alice")
	if reread.FileURL != result.URL || reread.FileName != "report.pdf" || reread.FileKey != result.Key {
		t.Errorf("task attachment metadata not updated: %+v", reread)
	}

	actions := mustAuditActions(t, audit, task.ID)
	uploadEntries := 0
	for _, a := range actions {
		if a == constants.ActionUploadFile {
			uploadEntries++
		}
	}
	if uploadEntries != 1 {
		t.Errorf("expected exactly one UPLOAD_FILE entry, got %d (%v)", uploadEntries, actions)
	}
}

func TestAttachFile_StorageFault(t *testing.T) {
	tasks, _, store := newTaskFixture(t)
	ctx := context.Background()

	task, _ := tasks.Create(ctx, createReq("Unlucky"), "alice")
	store.failUpload = true

	_, err := tasks.AttachFile(ctx, task.ID, bytes.NewReader([]byte("%PDF-")), 100, "doc.pdf", "application/pdf", "alice")
	if !errors.Is(err, apperrors.ErrStorageFault) {
		t.Fatalf("expected storage fault to surface as a generic 500, got %v", err)
	}

	// A failed upload must leave no dangling reference on the task.
	reread, _ := tasks.Get(ctx, task.ID, "alice")
	if reread.FileURL != "" || reread.FileKey != "" {
		t.Errorf("task must not reference a failed upload: %+v", reread)
	}
}

func TestPrivateToPublicScenario(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeStorage{}
	audit := NewAuditService(repository.NewAuditRepository(db))
	tasks := NewTaskService(repository.NewTaskRepository(db), audit, store)
	auth := NewAuthService(repository.NewUserRepository(db), "0123456789abcdef0123456789abcdef", time.Hour)
	ctx := context.Background()

	alice, err := auth.Register(ctx, "a@x.com", "password123", "Alice")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	login, err := auth.Login(ctx, "a@x.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	aliceClaims, err := auth.ValidateToken(login.AccessToken)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}
	if aliceClaims.Subject != alice.User.ID {
		t.Fatalf("token subject %s does not match user %s", aliceClaims.Subject, alice.User.ID)
	}

	bob, err := auth.Register(ctx, "b@x.com", "password456", "Bob")
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}

	task, err := tasks.Create(ctx, dto.CreateTaskRequest{
		Title:        "Doc",
		Description:  "Write docs for API",
		DeliveryDate: time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC),
	}, aliceClaims.Subject)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := tasks.Get(ctx, task.ID, bob.User.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("bob must not see alice's private task, got %v", err)
	}

	publish := true
	if _, err := tasks.Update(ctx, task.ID, dto.UpdateTaskRequest{IsPublic: &publish}, aliceClaims.Subject); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if _, err := tasks.Get(ctx, task.ID, bob.User.ID); err != nil {
		t.Errorf("bob should see the task once public, got %v", err)
	}
}
