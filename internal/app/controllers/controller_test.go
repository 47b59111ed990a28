package controllers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/app/models/dto"
	"github.com/yigit/docsystem/internal/app/query"
	"github.com/yigit/docsystem/internal/app/services"
	"github.com/yigit/docsystem/internal/middleware"
	"github.com/yigit/docsystem/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Each fake embeds the service interface; calling a method it does not
// override panics, which fails the test loudly.

type fakeCourses struct {
	services.CourseService
	deleted bool
	lastQ   dto.CourseListQuery
	page    query.Page
}

func (f *fakeCourses) DeleteCourse(context.Context, int64) (bool, error) { return f.deleted, nil }

func (f *fakeCourses) ListCourses(_ context.Context, q dto.CourseListQuery, p query.Page) (query.Result[*models.Course], error) {
	f.lastQ, f.page = q, p
	return query.NewResult([]*models.Course{{ID: 1, Code: "CS101"}}, 30, p), nil
}

type fakeAssociations struct {
	services.AssociationService
	linkResult models.LinkResult
	err        error
	actor      models.Actor
	status     string
	calls      []string
}

func (f *fakeAssociations) LinkDocumentToSyllabus(_ context.Context, sid, did int64) (models.LinkResult, error) {
	f.calls = append(f.calls, "link")
	return f.linkResult, f.err
}

func (f *fakeAssociations) UnlinkSyllabusFromCourse(context.Context, int64, int64) (*models.SyllabusDetails, error) {
	return nil, f.err
}

func (f *fakeAssociations) SetReadStatus(_ context.Context, actor models.Actor, did int64, status string) (*models.DocumentUser, error) {
	f.actor, f.status = actor, status
	if f.err != nil {
		return nil, f.err
	}
	return &models.DocumentUser{DocumentID: did, UserID: actor.UserID, ReadStatus: models.ReadStatus(status)}, nil
}

func (f *fakeAssociations) ReadStatusesForUser(_ context.Context, actor models.Actor) ([]*models.DocumentUser, error) {
	f.calls = append(f.calls, "all")
	return []*models.DocumentUser{}, nil
}

func (f *fakeAssociations) DocumentsByStatus(_ context.Context, actor models.Actor, status string) ([]*models.DocumentWithStatus, error) {
	f.calls = append(f.calls, "by:"+status)
	return []*models.DocumentWithStatus{}, nil
}

func serve(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestPagerPage(t *testing.T) {
	p := NewPager(12, 50)

	tests := []struct {
		url  string
		want query.Page
	}{
		{"/?", query.Page{Number: 1, Size: 12}},
		{"/?page=3&size=5", query.Page{Number: 3, Size: 5}},
		{"/?page=x&size=y", query.Page{Number: 1, Size: 12}},
		{"/?size=500", query.Page{Number: 1, Size: 50}},
		{"/?size=-2", query.Page{Number: 1, Size: 12}},
		{"/?page=9223372036854775807", query.Page{Number: math.MaxInt / 12, Size: 12}},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, tt.url, nil)
		if got := p.Page(c); got != tt.want {
			t.Errorf("%s: page = %+v, want %+v", tt.url, got, tt.want)
		}
	}
}

func TestNewPagerDefaults(t *testing.T) {
	p := NewPager(0, 0)
	if p.DefaultSize != 12 || p.MaxSize != 100 {
		t.Errorf("pager = %+v", p)
	}
}

func TestListCoursesPaged(t *testing.T) {
	svc := &fakeCourses{}
	r := gin.New()
	r.GET("/courses", NewCourseController(svc, NewPager(12, 100)).ListCourses)

	w := serve(r, http.MethodGet, "/courses?search=intro&department=CS&page=3", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if svc.lastQ.Search != "intro" || svc.lastQ.Department != "CS" || svc.page.Number != 3 {
		t.Errorf("query = %+v page = %+v", svc.lastQ, svc.page)
	}

	var body struct {
		Data dto.PagedResponse[*models.Course] `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.TotalCount != 30 || body.Data.Pagination.TotalPages != 3 || body.Data.Pagination.HasNext {
		t.Errorf("pagination = %+v", body.Data.Pagination)
	}
}

func TestDeleteCourseMissing(t *testing.T) {
	r := gin.New()
	r.DELETE("/courses/:id", NewCourseController(&fakeCourses{}, NewPager(12, 100)).DeleteCourse)

	if w := serve(r, http.MethodDelete, "/courses/7", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
	if w := serve(r, http.MethodDelete, "/courses/abc", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", w.Code)
	}
}

func TestLinkDocumentReportsRepeatLinks(t *testing.T) {
	assoc := &fakeAssociations{}
	r := gin.New()
	r.POST("/syllabi/:id/documents/:documentId", NewSyllabusController(nil, assoc, NewPager(12, 100)).LinkDocument)

	assoc.linkResult = models.LinkResult{SyllabusID: 1, DocumentID: 2, DocumentType: models.DocumentTypePDF}
	w := serve(r, http.MethodPost, "/syllabi/1/documents/2", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("first link status = %d", w.Code)
	}

	assoc.linkResult.AlreadyLinked = true
	w = serve(r, http.MethodPost, "/syllabi/1/documents/2", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("repeat link status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"alreadyLinked":true`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestAssociationErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"mismatch", apperrors.NewMismatchError("syllabus is not linked to this course"), http.StatusConflict},
		{"missing", apperrors.ErrSyllabusNotFound, http.StatusNotFound},
		{"invalid type", apperrors.NewInvalidTypeError("weird", []string{"PDF", "EPUB"}), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assoc := &fakeAssociations{err: tt.err}
			ctrl := NewSyllabusController(nil, assoc, NewPager(12, 100))
			r := gin.New()
			r.DELETE("/syllabi/:id/course/:courseId", ctrl.UnlinkCourse)
			r.POST("/syllabi/:id/documents/:documentId", ctrl.LinkDocument)

			w := serve(r, http.MethodDelete, "/syllabi/1/course/2", "", nil)
			if w.Code != tt.want {
				t.Errorf("unlink status = %d, want %d", w.Code, tt.want)
			}
			w = serve(r, http.MethodPost, "/syllabi/1/documents/2", "", nil)
			if w.Code != tt.want {
				t.Errorf("link status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestSetReadStatusUsesActor(t *testing.T) {
	assoc := &fakeAssociations{}
	r := gin.New()
	r.Use(middleware.Actor())
	r.PUT("/documents/:id/status", NewDocumentController(nil, nil, assoc, NewPager(12, 100)).SetReadStatus)

	w := serve(r, http.MethodPut, "/documents/4/status", `{"status":"reading"}`, map[string]string{middleware.UserIDHeader: "9"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	if assoc.actor.UserID != 9 || assoc.status != "reading" {
		t.Errorf("actor = %+v status = %q", assoc.actor, assoc.status)
	}

	assoc.err = apperrors.NewInvalidStatusError("unread", []string{"todo", "reading", "finished"})
	w = serve(r, http.MethodPut, "/documents/4/status", `{"status":"unread"}`, map[string]string{middleware.UserIDHeader: "9"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid status code = %d", w.Code)
	}
	if resp := decode(t, w); resp.Error == nil || resp.Error.Code != dto.ErrorCodeInvalidStatus {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestMyReadStatusesFilter(t *testing.T) {
	assoc := &fakeAssociations{}
	r := gin.New()
	r.Use(middleware.Actor())
	r.GET("/me/read-statuses", NewDocumentController(nil, nil, assoc, NewPager(12, 100)).MyReadStatuses)

	headers := map[string]string{middleware.UserIDHeader: "3"}
	serve(r, http.MethodGet, "/me/read-statuses", "", headers)
	serve(r, http.MethodGet, "/me/read-statuses?status=finished", "", headers)

	if strings.Join(assoc.calls, ",") != "all,by:finished" {
		t.Errorf("calls = %v", assoc.calls)
	}
}
