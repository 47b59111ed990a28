package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/app/query"
	"github.com/yigit/docsystem/internal/app/repositories"
	"github.com/yigit/docsystem/internal/pkg/apperrors"
	"github.com/yigit/docsystem/internal/pkg/cache"
)

// ── Mock Repositories ──

type pair struct{ a, b int64 }

type mockDB struct {
	nextID    int64
	courses   map[int64]*models.Course
	syllabi   map[int64]*models.Syllabus
	documents map[int64]*models.Document
	tags      map[int64]*models.Tag
	links     map[pair]*models.SyllabusDocument
	readers   map[pair]*models.DocumentUser
}

func newMockDB() *mockDB {
	return &mockDB{
		courses:   make(map[int64]*models.Course),
		syllabi:   make(map[int64]*models.Syllabus),
		documents: make(map[int64]*models.Document),
		tags:      make(map[int64]*models.Tag),
		links:     make(map[pair]*models.SyllabusDocument),
		readers:   make(map[pair]*models.DocumentUser),
	}
}

func (db *mockDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *mockDB) details(s *models.Syllabus) *models.SyllabusDetails {
	cp := *s
	d := &models.SyllabusDetails{Syllabus: cp}
	if s.CourseID != nil {
		if c, ok := db.courses[*s.CourseID]; ok {
			d.Course = &models.CourseSummary{ID: c.ID, Code: c.Code, Title: c.Title, Department: c.Department}
		}
	}
	return d
}

// courses

type mockCourseStore struct{ db *mockDB }

func (m *mockCourseStore) Create(_ context.Context, c *models.Course) (*models.Course, error) {
	for _, existing := range m.db.courses {
		if existing.Code == c.Code {
			return nil, apperrors.NewValidationError().Add("code", "Course code "+c.Code+" already exists")
		}
	}
	cp := *c
	cp.ID = m.db.id()
	m.db.courses[cp.ID] = &cp
	return &cp, nil
}

func (m *mockCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	if c, ok := m.db.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (m *mockCourseStore) Update(_ context.Context, c *models.Course) (*models.Course, error) {
	if _, ok := m.db.courses[c.ID]; !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	m.db.courses[c.ID] = &cp
	return &cp, nil
}

// Delete mirrors ON DELETE SET NULL
func (m *mockCourseStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.db.courses[id]; !ok {
		return false, nil
	}
	delete(m.db.courses, id)
	for _, s := range m.db.syllabi {
		if s.CourseID != nil && *s.CourseID == id {
			s.CourseID = nil
		}
	}
	return true, nil
}

func (m *mockCourseStore) ListAll(_ context.Context) ([]*models.Course, error) {
	out := make([]*models.Course, 0, len(m.db.courses))
	for _, c := range m.db.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *mockCourseStore) Query(ctx context.Context, f query.CourseFilter, p query.Page) (query.Result[*models.Course], error) {
	all, _ := m.ListAll(ctx)
	var items []*models.Course
	for _, c := range all {
		if f.Department != "" && c.Department != f.Department {
			continue
		}
		items = append(items, c)
	}
	return query.NewResult(items, int64(len(items)), p), nil
}

func (m *mockCourseStore) Departments(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, c := range m.db.courses {
		if !seen[c.Department] {
			seen[c.Department] = true
			out = append(out, c.Department)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *mockCourseStore) Stats(_ context.Context) ([]models.CourseStats, error) {
	return nil, nil
}

// syllabi

type mockSyllabusStore struct {
	db *mockDB
	// raceCourse simulates another request linking the syllabus between
	// the service's read and its conditional update
	raceCourse *int64
}

func (m *mockSyllabusStore) Create(_ context.Context, s *models.Syllabus) (*models.Syllabus, error) {
	if s.CourseID != nil {
		if _, ok := m.db.courses[*s.CourseID]; !ok {
			return nil, apperrors.ErrCourseNotFound
		}
	}
	cp := *s
	cp.ID = m.db.id()
	m.db.syllabi[cp.ID] = &cp
	return &cp, nil
}

func (m *mockSyllabusStore) GetByID(_ context.Context, id int64) (*models.SyllabusDetails, error) {
	if s, ok := m.db.syllabi[id]; ok {
		return m.db.details(s), nil
	}
	return nil, apperrors.ErrSyllabusNotFound
}

func (m *mockSyllabusStore) Update(_ context.Context, s *models.Syllabus) (*models.Syllabus, error) {
	if _, ok := m.db.syllabi[s.ID]; !ok {
		return nil, apperrors.ErrSyllabusNotFound
	}
	cp := *s
	m.db.syllabi[s.ID] = &cp
	return &cp, nil
}

func (m *mockSyllabusStore) Delete(_ context.Context, id int64) (models.DeleteResult, error) {
	s, ok := m.db.syllabi[id]
	if !ok {
		return models.DeleteResult{}, nil
	}
	delete(m.db.syllabi, id)
	for k := range m.db.links {
		if k.a == id {
			delete(m.db.links, k)
		}
	}
	return models.DeleteResult{Deleted: true, FilePath: s.FilePath}, nil
}

func (m *mockSyllabusStore) collect(keep func(*models.Syllabus) bool) []*models.SyllabusDetails {
	var out []*models.SyllabusDetails
	for _, s := range m.db.syllabi {
		if keep(s) {
			out = append(out, m.db.details(s))
		}
	}
	query.SortSyllabi(out)
	return out
}

func (m *mockSyllabusStore) ListAll(_ context.Context) ([]*models.SyllabusDetails, error) {
	return m.collect(func(*models.Syllabus) bool { return true }), nil
}

func (m *mockSyllabusStore) Unlinked(_ context.Context) ([]*models.SyllabusDetails, error) {
	return m.collect(func(s *models.Syllabus) bool { return s.CourseID == nil }), nil
}

func (m *mockSyllabusStore) ByCourse(_ context.Context, courseID int64) ([]*models.SyllabusDetails, error) {
	return m.collect(func(s *models.Syllabus) bool { return s.CourseID != nil && *s.CourseID == courseID }), nil
}

func (m *mockSyllabusStore) Filter(_ context.Context, f query.SyllabusFilter) ([]*models.SyllabusDetails, error) {
	return m.collect(func(s *models.Syllabus) bool {
		if f.Year != nil && s.Year != *f.Year {
			return false
		}
		if f.Semester != "" && !strings.EqualFold(string(s.Semester), f.Semester) {
			return false
		}
		return true
	}), nil
}

func (m *mockSyllabusStore) Query(ctx context.Context, f query.SyllabusFilter, p query.Page) (query.Result[*models.SyllabusDetails], error) {
	items, _ := m.Filter(ctx, f)
	return query.NewResult(items, int64(len(items)), p), nil
}

func (m *mockSyllabusStore) Years(_ context.Context) ([]int, error) {
	seen := map[int]bool{}
	var out []int
	for _, s := range m.db.syllabi {
		if !seen[s.Year] {
			seen[s.Year] = true
			out = append(out, s.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out, nil
}

func (m *mockSyllabusStore) ByDocument(_ context.Context, documentID int64) ([]*models.SyllabusDetails, error) {
	return m.collect(func(s *models.Syllabus) bool {
		_, ok := m.db.links[pair{s.ID, documentID}]
		return ok
	}), nil
}

func (m *mockSyllabusStore) AttachCourse(_ context.Context, syllabusID, courseID int64) (bool, error) {
	s, ok := m.db.syllabi[syllabusID]
	if !ok {
		return false, nil
	}
	if m.raceCourse != nil {
		s.CourseID = m.raceCourse
		m.raceCourse = nil
	}
	if s.CourseID != nil {
		return false, nil
	}
	id := courseID
	s.CourseID = &id
	return true, nil
}

func (m *mockSyllabusStore) DetachCourse(_ context.Context, syllabusID, courseID int64) (bool, error) {
	s, ok := m.db.syllabi[syllabusID]
	if !ok || s.CourseID == nil || *s.CourseID != courseID {
		return false, nil
	}
	s.CourseID = nil
	return true, nil
}

// documents

type mockDocumentStore struct {
	db        *mockDB
	countsErr error
	relateErr error
}

// Create is all-or-nothing, like the transactional repository
func (m *mockDocumentStore) Create(_ context.Context, doc *models.Document, opts repositories.CreateDocumentOptions) (*models.Document, error) {
	if opts.SyllabusID != nil {
		if _, ok := m.db.syllabi[*opts.SyllabusID]; !ok {
			return nil, apperrors.ErrSyllabusNotFound
		}
	}
	cp := *doc
	cp.ID = m.db.id()
	cp.CreatedAt = time.Now()
	m.db.documents[cp.ID] = &cp

	if opts.SyllabusID != nil {
		m.db.links[pair{*opts.SyllabusID, cp.ID}] = &models.SyllabusDocument{
			SyllabusID: *opts.SyllabusID, DocumentID: cp.ID, DocumentType: models.CoerceDocumentType(string(cp.DocumentType)),
		}
	}
	if opts.UserID != nil {
		m.db.readers[pair{cp.ID, *opts.UserID}] = &models.DocumentUser{
			DocumentID: cp.ID, UserID: *opts.UserID, ReadStatus: models.InitialReadStatus,
		}
	}
	out := cp
	return &out, nil
}

func (m *mockDocumentStore) GetByID(_ context.Context, id int64) (*models.Document, error) {
	if d, ok := m.db.documents[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, apperrors.ErrDocumentNotFound
}

func (m *mockDocumentStore) Update(_ context.Context, doc *models.Document) (*models.Document, error) {
	if _, ok := m.db.documents[doc.ID]; !ok {
		return nil, apperrors.ErrDocumentNotFound
	}
	cp := *doc
	m.db.documents[doc.ID] = &cp
	return &cp, nil
}

func (m *mockDocumentStore) Delete(_ context.Context, id int64) (models.DeleteResult, error) {
	d, ok := m.db.documents[id]
	if !ok {
		return models.DeleteResult{}, nil
	}
	delete(m.db.documents, id)
	return models.DeleteResult{Deleted: true, FilePath: d.Filepath}, nil
}

func (m *mockDocumentStore) sorted(keep func(*models.Document) bool) []*models.Document {
	var out []*models.Document
	for _, d := range m.db.documents {
		if keep(d) {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m *mockDocumentStore) ListAll(_ context.Context) ([]*models.Document, error) {
	return m.sorted(func(*models.Document) bool { return true }), nil
}

func (m *mockDocumentStore) Query(_ context.Context, f query.DocumentFilter, _ query.DocumentSort, p query.Page) (query.Result[*models.Document], error) {
	items := m.sorted(func(d *models.Document) bool {
		return f.DocumentType == "" || d.DocumentType == f.DocumentType
	})
	total := int64(len(items))
	if !p.IsAll() {
		start := (p.Number - 1) * p.Size
		if start > len(items) {
			start = len(items)
		}
		end := start + p.Size
		if end > len(items) {
			end = len(items)
		}
		items = items[start:end]
	}
	return query.NewResult(items, total, p), nil
}

func (m *mockDocumentStore) ByType(_ context.Context, t models.DocumentType) ([]*models.Document, error) {
	return m.sorted(func(d *models.Document) bool { return d.DocumentType == t }), nil
}

func (m *mockDocumentStore) Related(_ context.Context, doc *models.Document, limit int) ([]*models.Document, error) {
	if m.relateErr != nil {
		return nil, m.relateErr
	}
	out := m.sorted(func(d *models.Document) bool {
		if d.ID == doc.ID {
			return false
		}
		return doc.TagID == nil || (d.TagID != nil && *d.TagID == *doc.TagID)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockDocumentStore) BySyllabus(_ context.Context, syllabusID int64) ([]*models.Document, error) {
	return m.sorted(func(d *models.Document) bool {
		_, ok := m.db.links[pair{syllabusID, d.ID}]
		return ok
	}), nil
}

func (m *mockDocumentStore) AvailableForSyllabus(_ context.Context, syllabusID int64) ([]*models.Document, error) {
	return m.sorted(func(d *models.Document) bool {
		_, ok := m.db.links[pair{syllabusID, d.ID}]
		return !ok
	}), nil
}

func (m *mockDocumentStore) SyllabiCounts(_ context.Context, ids []int64) (map[int64]int64, error) {
	if m.countsErr != nil {
		return nil, m.countsErr
	}
	counts := map[int64]int64{}
	for k := range m.db.links {
		counts[k.b]++
	}
	return counts, nil
}

// tags

type mockTagStore struct {
	db     *mockDB
	getErr error
}

func (m *mockTagStore) ListAll(_ context.Context) ([]*models.Tag, error) {
	var out []*models.Tag
	for _, t := range m.db.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockTagStore) GetByID(_ context.Context, id int64) (*models.Tag, error) {
	if t, ok := m.db.tags[id]; ok {
		return t, nil
	}
	return nil, apperrors.ErrTagNotFound
}

func (m *mockTagStore) GetByIDs(_ context.Context, ids []int64) (map[int64]*models.Tag, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := map[int64]*models.Tag{}
	for _, id := range ids {
		if t, ok := m.db.tags[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (m *mockTagStore) byName(name string) *models.Tag {
	for _, t := range m.db.tags {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func (m *mockTagStore) Create(_ context.Context, name string) (*models.Tag, error) {
	if m.byName(name) != nil {
		return nil, apperrors.NewValidationError().Add("name", "Tag "+name+" already exists")
	}
	t := &models.Tag{ID: m.db.id(), Name: name}
	m.db.tags[t.ID] = t
	return t, nil
}

func (m *mockTagStore) Update(_ context.Context, id int64, name string) (*models.Tag, error) {
	t, ok := m.db.tags[id]
	if !ok {
		return nil, apperrors.ErrTagNotFound
	}
	t.Name = name
	return t, nil
}

func (m *mockTagStore) Ensure(ctx context.Context, name string) (*models.Tag, error) {
	if t := m.byName(name); t != nil {
		return t, nil
	}
	return m.Create(ctx, name)
}

func (m *mockTagStore) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := m.db.tags[id]
	delete(m.db.tags, id)
	return ok, nil
}

// junction

type mockLinkStore struct{ db *mockDB }

func (m *mockLinkStore) Link(_ context.Context, syllabusID, documentID int64, documentType string) (*models.SyllabusDocument, bool, error) {
	key := pair{syllabusID, documentID}
	if existing, ok := m.db.links[key]; ok {
		return existing, false, nil
	}
	link := &models.SyllabusDocument{
		SyllabusID:   syllabusID,
		DocumentID:   documentID,
		DocumentType: models.CoerceDocumentType(documentType),
	}
	m.db.links[key] = link
	return link, true, nil
}

func (m *mockLinkStore) Get(_ context.Context, syllabusID, documentID int64) (*models.SyllabusDocument, error) {
	if l, ok := m.db.links[pair{syllabusID, documentID}]; ok {
		return l, nil
	}
	return nil, apperrors.NewResourceNotFoundError("syllabus document link not found")
}

func (m *mockLinkStore) Unlink(_ context.Context, syllabusID, documentID int64) (bool, error) {
	key := pair{syllabusID, documentID}
	_, ok := m.db.links[key]
	delete(m.db.links, key)
	return ok, nil
}

// read status

type mockReaderStore struct {
	db     *mockDB
	writes int
}

func (m *mockReaderStore) Upsert(_ context.Context, documentID, userID int64, status models.ReadStatus) (*models.DocumentUser, error) {
	m.writes++
	key := pair{documentID, userID}
	du, ok := m.db.readers[key]
	if !ok {
		du = &models.DocumentUser{DocumentID: documentID, UserID: userID}
		m.db.readers[key] = du
	}
	du.ReadStatus = status
	return du, nil
}

func (m *mockReaderStore) Get(_ context.Context, documentID, userID int64) (*models.DocumentUser, error) {
	if du, ok := m.db.readers[pair{documentID, userID}]; ok {
		return du, nil
	}
	return nil, apperrors.NewResourceNotFoundError("read status not found")
}

func (m *mockReaderStore) AllForUser(_ context.Context, userID int64) ([]*models.DocumentUser, error) {
	var out []*models.DocumentUser
	for k, du := range m.db.readers {
		if k.b == userID {
			out = append(out, du)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocumentID < out[j].DocumentID })
	return out, nil
}

func (m *mockReaderStore) DocumentsByStatus(_ context.Context, userID int64, status models.ReadStatus) ([]*models.DocumentWithStatus, error) {
	var out []*models.DocumentWithStatus
	for k, du := range m.db.readers {
		if k.b != userID || du.ReadStatus != status {
			continue
		}
		if d, ok := m.db.documents[k.a]; ok {
			out = append(out, &models.DocumentWithStatus{Document: *d, ReadStatus: du.ReadStatus})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// ── Mock collaborators ──

type mockCache struct {
	data  map[string][]byte
	reads int
	hits  int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	c.reads++
	raw, ok := c.data[key]
	if !ok {
		return cache.ErrNotFound
	}
	c.hits++
	return json.Unmarshal(raw, dest)
}

func (c *mockCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *mockCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type mockRemover struct {
	removed []string
	err     error
}

func (r *mockRemover) DeleteFile(path string) error {
	r.removed = append(r.removed, path)
	return r.err
}

// ── Fixture ──

type fixture struct {
	db        *mockDB
	courses   *mockCourseStore
	syllabi   *mockSyllabusStore
	documents *mockDocumentStore
	tags      *mockTagStore
	links     *mockLinkStore
	readers   *mockReaderStore
	cache     *mockCache
	files     *mockRemover
}

func newFixture() *fixture {
	db := newMockDB()
	return &fixture{
		db:        db,
		courses:   &mockCourseStore{db: db},
		syllabi:   &mockSyllabusStore{db: db},
		documents: &mockDocumentStore{db: db},
		tags:      &mockTagStore{db: db},
		links:     &mockLinkStore{db: db},
		readers:   &mockReaderStore{db: db},
		cache:     newMockCache(),
		files:     &mockRemover{},
	}
}

func (f *fixture) courseService() CourseService {
	return NewCourseService(f.courses, f.syllabi, f.cache, time.Minute)
}

func (f *fixture) syllabusService() SyllabusService {
	return NewSyllabusService(f.syllabi, f.courses, f.documents, f.files, f.cache, time.Minute)
}

func (f *fixture) documentService(now time.Time) DocumentService {
	svc := NewDocumentService(f.documents, f.tags, f.files).(*documentServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func (f *fixture) associationService() AssociationService {
	return NewAssociationService(f.syllabi, f.courses, f.documents, f.links, f.readers)
}

func (f *fixture) addCourse(code, department string) *models.Course {
	c := &models.Course{ID: f.db.id(), Code: code, Title: code + " title", Department: department}
	f.db.courses[c.ID] = c
	return c
}

func (f *fixture) addSyllabus(year int, semester models.Semester, courseID *int64) *models.Syllabus {
	s := &models.Syllabus{ID: f.db.id(), Year: year, Semester: semester, Instructor: "Dr. Ada", CourseID: courseID}
	f.db.syllabi[s.ID] = s
	return s
}

func (f *fixture) addDocument(title string, t models.DocumentType, tagID *int64) *models.Document {
	d := &models.Document{ID: f.db.id(), Title: title, DocumentType: t, TagID: tagID}
	f.db.documents[d.ID] = d
	return d
}
