package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"travel-facilities-api/internal/api/dto"
	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/ports"

	"github.com/google/uuid"
)

type fakeContribRepo struct {
	created  []*domain.Contribution
	approved []uuid.UUID
	rejected []uuid.UUID
	place    *domain.Place
}

func (f *fakeContribRepo) Create(ctx context.Context, c *domain.Contribution) error {
	f.created = append(f.created, c)
	return nil
}

func (f *fakeContribRepo) List(ctx context.Context, limit int) ([]*domain.Contribution, error) {
	return f.created, nil
}

func (f *fakeContribRepo) Approve(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	if f.place == nil {
		return nil, ports.ErrNotFound
	}
	f.approved = append(f.approved, id)
	return f.place, nil
}

func (f *fakeContribRepo) Reject(ctx context.Context, id uuid.UUID) error {
	for _, c := range f.created {
		if c.ContributionID == id {
			f.rejected = append(f.rejected, id)
			return nil
		}
	}
	return ports.ErrNotFound
}

func TestSubmitContribution(t *testing.T) {
	repo := &fakeContribRepo{}
	h := &ContributionHandler{Repo: repo}

	body := `{"type":"food","name_fa":"رستوران تازه","city":"Tehran","address":"جایی","latitude":35.7,"longitude":51.4}`
	req := httptest.NewRequest(http.MethodPost, "/contributions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created = %d contributions, want 1", len(repo.created))
	}
	c := repo.created[0]
	if c.Type != domain.PlaceFood || c.NameFa != "رستوران تازه" {
		t.Errorf("stored contribution = %+v", c)
	}

	var res dto.ContributionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.ContributionID == "" {
		t.Error("contribution_id missing from response")
	}
}

func TestSubmitContributionValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown type", `{"type":"spa","name_fa":"x","latitude":35.7,"longitude":51.4}`},
		{"missing name", `{"type":"food","name_fa":"  ","latitude":35.7,"longitude":51.4}`},
		{"bad coordinates", `{"type":"food","name_fa":"x","latitude":120,"longitude":51.4}`},
		{"bad json", `{"type":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeContribRepo{}
			h := &ContributionHandler{Repo: repo}

			req := httptest.NewRequest(http.MethodPost, "/contributions", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Collection(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if len(repo.created) != 0 {
				t.Fatal("invalid submission was stored")
			}
		})
	}
}

func TestApproveContribution(t *testing.T) {
	place := testPlace(uuid.New(), 35.7, 51.4, "تایید شده")
	repo := &fakeContribRepo{place: place}
	h := &ContributionHandler{Repo: repo}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/contributions/"+id+"/approve", nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.Approve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res dto.ApproveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.PlaceID != place.PlaceID.String() {
		t.Errorf("place_id = %q, want %q", res.PlaceID, place.PlaceID)
	}
}

func TestApproveUnknownContribution(t *testing.T) {
	h := &ContributionHandler{Repo: &fakeContribRepo{}}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/contributions/"+id+"/approve", nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.Approve(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRejectContribution(t *testing.T) {
	c := &domain.Contribution{ContributionID: uuid.New(), Type: domain.PlaceFood, NameFa: "x"}
	repo := &fakeContribRepo{created: []*domain.Contribution{c}}
	h := &ContributionHandler{Repo: repo}

	req := httptest.NewRequest(http.MethodPost, "/contributions/"+c.ContributionID.String()+"/reject", nil)
	req.SetPathValue("id", c.ContributionID.String())
	rec := httptest.NewRecorder()
	h.Reject(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(repo.rejected) != 1 {
		t.Fatalf("rejected = %d, want 1", len(repo.rejected))
	}
}
