package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/tomboulier/choix-stage-desar/internal/model"
	"github.com/tomboulier/choix-stage-desar/internal/repository"
)

// ── Mock RotationRepository ──

type mockRotationRepo struct {
	rotations map[string]*model.Rotation
	seq       int
	listErr   error
	locked    []string
}

func newMockRotationRepo() *mockRotationRepo {
	return &mockRotationRepo{rotations: make(map[string]*model.Rotation)}
}

func (m *mockRotationRepo) Create(_ context.Context, rotation *model.Rotation) error {
	if rotation.RotationID == "" {
		m.seq++
		rotation.RotationID = fmt.Sprintf("rot-%d", m.seq)
	}
	rotation.CreatedAt = time.Now()
	rotation.UpdatedAt = rotation.CreatedAt
	m.rotations[rotation.RotationID] = rotation
	return nil
}

func (m *mockRotationRepo) GetByID(_ context.Context, id string) (*model.Rotation, error) {
	if r, ok := m.rotations[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRotationRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Rotation, error) {
	m.locked = append(m.locked, id)
	return m.GetByID(ctx, id)
}

func (m *mockRotationRepo) List(_ context.Context) ([]model.Rotation, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]model.Rotation, 0, len(m.rotations))
	for _, r := range m.rotations {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Title != result[j].Title {
			return result[i].Title < result[j].Title
		}
		return result[i].RotationID < result[j].RotationID
	})
	return result, nil
}

func (m *mockRotationRepo) Update(_ context.Context, rotation *model.Rotation) error {
	cp := *rotation
	m.rotations[rotation.RotationID] = &cp
	return nil
}

func (m *mockRotationRepo) Delete(_ context.Context, id string) error {
	delete(m.rotations, id)
	return nil
}

// ── Mock InternRepository ──

// interns is a slice so tests can plant duplicate lookup tokens
type mockInternRepo struct {
	interns []*model.Intern
	seq     int
}

func newMockInternRepo() *mockInternRepo {
	return &mockInternRepo{}
}

func (m *mockInternRepo) Create(_ context.Context, intern *model.Intern) error {
	if intern.InternID == "" {
		m.seq++
		intern.InternID = fmt.Sprintf("intern-%d", m.seq)
	}
	if err := intern.BeforeCreate(nil); err != nil {
		return err
	}
	intern.CreatedAt = time.Now()
	intern.UpdatedAt = intern.CreatedAt
	m.interns = append(m.interns, intern)
	return nil
}

func (m *mockInternRepo) GetByID(_ context.Context, id string) (*model.Intern, error) {
	for _, i := range m.interns {
		if i.InternID == id {
			cp := *i
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInternRepo) ListByLookupToken(_ context.Context, token string, limit int) ([]model.Intern, error) {
	var result []model.Intern
	for _, i := range m.interns {
		if i.LookupToken == token {
			result = append(result, *i)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (m *mockInternRepo) List(_ context.Context, offset, limit int) ([]model.Intern, int64, error) {
	total := int64(len(m.interns))
	if offset >= len(m.interns) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(m.interns) {
		end = len(m.interns)
	}
	var result []model.Intern
	for _, i := range m.interns[offset:end] {
		result = append(result, *i)
	}
	return result, total, nil
}

func (m *mockInternRepo) Update(_ context.Context, intern *model.Intern) error {
	for idx, i := range m.interns {
		if i.InternID == intern.InternID {
			cp := *intern
			cp.LookupToken = i.LookupToken // the real repository never writes the token
			m.interns[idx] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockInternRepo) Delete(_ context.Context, id string) error {
	for idx, i := range m.interns {
		if i.InternID == id {
			m.interns = append(m.interns[:idx], m.interns[idx+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments []*model.Assignment
	rotations   *mockRotationRepo
	interns     *mockInternRepo
	seq         int
	countErr    error
}

func newMockAssignmentRepo(rotations *mockRotationRepo, interns *mockInternRepo) *mockAssignmentRepo {
	return &mockAssignmentRepo{rotations: rotations, interns: interns}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	m.seq++
	a.AssignmentID = fmt.Sprintf("assign-%d", m.seq)
	a.CreatedAt = time.Now()
	cp := *a
	m.assignments = append(m.assignments, &cp)
	return nil
}

// live returns the assignments whose intern and rotation still exist,
// mirroring ON DELETE CASCADE
func (m *mockAssignmentRepo) live() []*model.Assignment {
	var result []*model.Assignment
	for _, a := range m.assignments {
		if _, ok := m.rotations.rotations[a.RotationID]; !ok {
			continue
		}
		if _, err := m.interns.GetByID(context.Background(), a.InternID); err != nil {
			continue
		}
		result = append(result, a)
	}
	return result
}

func (m *mockAssignmentRepo) CountByRotation(_ context.Context, rotationID string) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	var n int64
	for _, a := range m.live() {
		if a.RotationID == rotationID {
			n++
		}
	}
	return n, nil
}

func (m *mockAssignmentRepo) CountByIntern(_ context.Context, internID string) (int64, error) {
	var n int64
	for _, a := range m.live() {
		if a.InternID == internID {
			n++
		}
	}
	return n, nil
}

func (m *mockAssignmentRepo) Exists(_ context.Context, internID, rotationID string) (bool, error) {
	for _, a := range m.live() {
		if a.InternID == internID && a.RotationID == rotationID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAssignmentRepo) List(ctx context.Context, filter repository.AssignmentFilter) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.live() {
		if filter.InternID != "" && a.InternID != filter.InternID {
			continue
		}
		if filter.RotationID != "" && a.RotationID != filter.RotationID {
			continue
		}
		cp := *a
		cp.Intern, _ = m.interns.GetByID(ctx, a.InternID)
		cp.Rotation, _ = m.rotations.GetByID(ctx, a.RotationID)
		result = append(result, cp)
	}
	return result, nil
}

// ── Test fixture ──

type mockStore struct {
	repo        *repository.Repository
	rotations   *mockRotationRepo
	interns     *mockInternRepo
	assignments *mockAssignmentRepo
}

func newMockStore() *mockStore {
	rotations := newMockRotationRepo()
	interns := newMockInternRepo()
	assignments := newMockAssignmentRepo(rotations, interns)
	return &mockStore{
		repo: &repository.Repository{
			Rotation:   rotations,
			Intern:     interns,
			Assignment: assignments,
		},
		rotations:   rotations,
		interns:     interns,
		assignments: assignments,
	}
}

func (s *mockStore) addRotation(title string, duration model.Duration, slots int) *model.Rotation {
	r := &model.Rotation{Title: title, Duration: duration, TotalSlots: slots}
	_ = s.rotations.Create(context.Background(), r)
	return r
}

func (s *mockStore) addIntern(first, last string) *model.Intern {
	i := &model.Intern{FirstName: first, LastName: last}
	_ = s.interns.Create(context.Background(), i)
	return i
}

// addAssignment bypasses the capacity guard, like a direct write to the store
func (s *mockStore) addAssignment(intern *model.Intern, rotation *model.Rotation) {
	_ = s.assignments.Create(context.Background(), &model.Assignment{
		InternID:   intern.InternID,
		RotationID: rotation.RotationID,
	})
}

// ── Recording metrics ──

type recordingMetrics struct {
	assignments map[string]int
	lookups     map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{assignments: map[string]int{}, lookups: map[string]int{}}
}

func (r *recordingMetrics) Assignment(result string) { r.assignments[result]++ }
func (r *recordingMetrics) Lookup(result string)     { r.lookups[result]++ }
