package usecase

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"resource-hub/internal/database"
	"resource-hub/internal/domain/assignment"
	"resource-hub/internal/domain/personnel"
	"resource-hub/internal/domain/project"
	"resource-hub/internal/domain/schedule"
	"resource-hub/internal/domain/skill"
	"resource-hub/internal/pkg/date"
	"resource-hub/internal/repository"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(context.Context, string, ...any) (int64, error)          { return 0, nil }
func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row        { return nil }
func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}
func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	beginErr error
	txs      []*fakeTx
}

func (d *fakeDB) Exec(context.Context, string, ...any) (int64, error)          { return 0, nil }
func (d *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (d *fakeDB) QueryRow(context.Context, string, ...any) database.Row        { return nil }
func (d *fakeDB) Ping(context.Context) error                                   { return nil }
func (d *fakeDB) Close() error                                                 { return nil }
func (d *fakeDB) SQLDB() *sql.DB                                               { return nil }
func (d *fakeDB) Begin(context.Context) (database.Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	tx := &fakeTx{}
	d.txs = append(d.txs, tx)
	return tx, nil
}

type fakePersonnelRepo struct {
	people        map[uuid.UUID]personnel.Person
	statusUpdates []personnel.Status
}

func newFakePersonnelRepo(people ...personnel.Person) *fakePersonnelRepo {
	m := make(map[uuid.UUID]personnel.Person, len(people))
	for _, p := range people {
		m[p.ID] = p
	}
	return &fakePersonnelRepo{people: m}
}

func (r *fakePersonnelRepo) WithTx(database.Tx) repository.PersonnelRepository { return r }

func (r *fakePersonnelRepo) List(context.Context) ([]personnel.Person, error) {
	out := make([]personnel.Person, 0, len(r.people))
	for _, p := range r.people {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePersonnelRepo) GetByID(_ context.Context, id uuid.UUID) (personnel.Person, error) {
	p, ok := r.people[id]
	if !ok {
		return personnel.Person{}, repository.ErrPersonnelNotFound
	}
	return p, nil
}

func (r *fakePersonnelRepo) GetByEmail(_ context.Context, email string) (personnel.Person, error) {
	for _, p := range r.people {
		if p.Email == email {
			return p, nil
		}
	}
	return personnel.Person{}, repository.ErrPersonnelNotFound
}

func (r *fakePersonnelRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, p := range r.people {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePersonnelRepo) Create(_ context.Context, p personnel.Person) error {
	for _, existing := range r.people {
		if existing.Email == p.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.people[p.ID] = p
	return nil
}

func (r *fakePersonnelRepo) Update(_ context.Context, p personnel.Person) error {
	if _, ok := r.people[p.ID]; !ok {
		return repository.ErrPersonnelNotFound
	}
	r.people[p.ID] = p
	return nil
}

func (r *fakePersonnelRepo) UpdateStatus(_ context.Context, id uuid.UUID, status personnel.Status) error {
	p, ok := r.people[id]
	if !ok {
		return repository.ErrPersonnelNotFound
	}
	p.Status = status
	r.people[id] = p
	r.statusUpdates = append(r.statusUpdates, status)
	return nil
}

func (r *fakePersonnelRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.people[id]; !ok {
		return repository.ErrPersonnelNotFound
	}
	delete(r.people, id)
	return nil
}

type fakeProjectRepo struct {
	projects map[uuid.UUID]project.Project
}

func newFakeProjectRepo(projects ...project.Project) *fakeProjectRepo {
	m := make(map[uuid.UUID]project.Project, len(projects))
	for _, p := range projects {
		m[p.ID] = p
	}
	return &fakeProjectRepo{projects: m}
}

func (r *fakeProjectRepo) WithTx(database.Tx) repository.ProjectRepository { return r }

func (r *fakeProjectRepo) List(context.Context) ([]project.Project, error) {
	out := make([]project.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (project.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return project.Project{}, repository.ErrProjectNotFound
	}
	return p, nil
}

func (r *fakeProjectRepo) Create(_ context.Context, p project.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, p project.Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return repository.ErrProjectNotFound
	}
	r.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type fakeRequirementRepo struct {
	reqs []project.Requirement
}

func (r *fakeRequirementRepo) WithTx(database.Tx) repository.ProjectRequirementRepository { return r }

func (r *fakeRequirementRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]project.Requirement, error) {
	var out []project.Requirement
	for _, req := range r.reqs {
		if req.ProjectID == projectID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequirementRepo) DeleteByProject(_ context.Context, projectID uuid.UUID) error {
	kept := r.reqs[:0]
	for _, req := range r.reqs {
		if req.ProjectID != projectID {
			kept = append(kept, req)
		}
	}
	r.reqs = kept
	return nil
}

func (r *fakeRequirementRepo) Insert(_ context.Context, reqs []project.Requirement) error {
	r.reqs = append(r.reqs, reqs...)
	return nil
}

type fakePersonnelSkillRepo struct {
	skills []personnel.Skill
}

func (r *fakePersonnelSkillRepo) WithTx(database.Tx) repository.PersonnelSkillRepository { return r }

func (r *fakePersonnelSkillRepo) ListByPersonnel(_ context.Context, personnelID uuid.UUID) ([]personnel.Skill, error) {
	var out []personnel.Skill
	for _, s := range r.skills {
		if s.PersonnelID == personnelID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakePersonnelSkillRepo) ListAll(context.Context) ([]personnel.Skill, error) {
	return append([]personnel.Skill(nil), r.skills...), nil
}

func (r *fakePersonnelSkillRepo) DeleteByPersonnel(_ context.Context, personnelID uuid.UUID) error {
	kept := r.skills[:0]
	for _, s := range r.skills {
		if s.PersonnelID != personnelID {
			kept = append(kept, s)
		}
	}
	r.skills = kept
	return nil
}

func (r *fakePersonnelSkillRepo) Insert(_ context.Context, entries []personnel.Skill) error {
	r.skills = append(r.skills, entries...)
	return nil
}

type fakeAssignmentRepo struct {
	assignments    []assignment.Assignment
	forceDuplicate bool
}

func (r *fakeAssignmentRepo) WithTx(database.Tx) repository.AssignmentRepository { return r }

func (r *fakeAssignmentRepo) FindByProjectAndPersonnel(_ context.Context, projectID, personnelID uuid.UUID) (assignment.Assignment, error) {
	for _, a := range r.assignments {
		if a.ProjectID == projectID && a.PersonnelID == personnelID {
			return a, nil
		}
	}
	return assignment.Assignment{}, repository.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]repository.AssignmentWithPerson, error) {
	var out []repository.AssignmentWithPerson
	for _, a := range r.assignments {
		if a.ProjectID == projectID {
			out = append(out, repository.AssignmentWithPerson{Assignment: a})
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ListIntersectingByPersonnel(_ context.Context, personnelID uuid.UUID, from, to date.Date) ([]assignment.Assignment, error) {
	window := schedule.NewSpan(from, to)
	var out []assignment.Assignment
	for _, a := range r.assignments {
		if a.PersonnelID == personnelID && a.Span().Intersects(window) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ListIntersecting(_ context.Context, from, to date.Date) ([]assignment.Assignment, error) {
	window := schedule.NewSpan(from, to)
	var out []assignment.Assignment
	for _, a := range r.assignments {
		if a.Span().Intersects(window) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) PersonnelAssignedToProject(_ context.Context, projectID uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool)
	for _, a := range r.assignments {
		if a.ProjectID == projectID {
			out[a.PersonnelID] = true
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ExistsConflict(_ context.Context, personnelID, excludeProjectID uuid.UUID, from, to date.Date) (bool, error) {
	candidate := schedule.NewSpan(from, to)
	for _, a := range r.assignments {
		if a.PersonnelID == personnelID && a.ProjectID != excludeProjectID && a.Span().Intersects(candidate) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a assignment.Assignment) error {
	if r.forceDuplicate {
		return repository.ErrDuplicateAssignment
	}
	for _, existing := range r.assignments {
		if existing.ProjectID == a.ProjectID && existing.PersonnelID == a.PersonnelID {
			return repository.ErrDuplicateAssignment
		}
	}
	r.assignments = append(r.assignments, a)
	return nil
}

func (r *fakeAssignmentRepo) DeleteByProjectAndPersonnel(_ context.Context, projectID, personnelID uuid.UUID) (bool, error) {
	kept := r.assignments[:0]
	deleted := false
	for _, a := range r.assignments {
		if a.ProjectID == projectID && a.PersonnelID == personnelID {
			deleted = true
			continue
		}
		kept = append(kept, a)
	}
	r.assignments = kept
	return deleted, nil
}

func (r *fakeAssignmentRepo) UpdateDatesByProject(_ context.Context, projectID uuid.UUID, start, end date.Date) error {
	for i, a := range r.assignments {
		if a.ProjectID == projectID {
			r.assignments[i].StartDate = start
			r.assignments[i].EndDate = end
		}
	}
	return nil
}

type fakeSkillRepo struct {
	skills map[uuid.UUID]skill.Skill
}

func newFakeSkillRepo(skills ...skill.Skill) *fakeSkillRepo {
	m := make(map[uuid.UUID]skill.Skill, len(skills))
	for _, s := range skills {
		m[s.ID] = s
	}
	return &fakeSkillRepo{skills: m}
}

func (r *fakeSkillRepo) List(context.Context) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0, len(r.skills))
	for _, s := range r.skills {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSkillRepo) GetByID(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	s, ok := r.skills[id]
	if !ok {
		return skill.Skill{}, repository.ErrSkillNotFound
	}
	return s, nil
}

func (r *fakeSkillRepo) Create(_ context.Context, s skill.Skill) error {
	for _, existing := range r.skills {
		if existing.Name == s.Name {
			return repository.ErrDuplicateSkillName
		}
	}
	r.skills[s.ID] = s
	return nil
}

func (r *fakeSkillRepo) Update(_ context.Context, s skill.Skill) error {
	if _, ok := r.skills[s.ID]; !ok {
		return repository.ErrSkillNotFound
	}
	for _, existing := range r.skills {
		if existing.ID != s.ID && existing.Name == s.Name {
			return repository.ErrDuplicateSkillName
		}
	}
	r.skills[s.ID] = s
	return nil
}

func (r *fakeSkillRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.skills[id]; !ok {
		return repository.ErrSkillNotFound
	}
	delete(r.skills, id)
	return nil
}

// fakeCache stores marshaled entries and records invalidations.
type fakeCache struct {
	entries         map[string][]byte
	deletedKeys     []string
	deletedPatterns []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = b
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	c.deletedKeys = append(c.deletedKeys, key)
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.deletedPatterns = append(c.deletedPatterns, pattern)
	c.entries = make(map[string][]byte)
	return nil
}
