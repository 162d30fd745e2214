package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"giggles/contexts/contest/submission-queue/domain/entities"
)

type captionListing struct {
	Captions []struct {
		ID           string  `json:"id"`
		SubmissionID string  `json:"submissionId"`
		AudioURL     string  `json:"audioUrl"`
		Duration     float64 `json:"duration"`
		Likes        int     `json:"likes"`
		Hates        int     `json:"hates"`
		Score        int     `json:"score"`
	} `json:"captions"`
}

func TestCreateCaptionForUnknownSubmission(t *testing.T) {
	server := newTestServer(t, Options{}, nil, nil)

	rr := server.do(multipartRequest(t, "/submissions/nope/captions", "audio", "clip.aac", adtsAudio(20)))

	expectError(t, rr, http.StatusBadRequest, "The submission `nope` does not exist.")
}

func TestCreateCaptionValidatesUpload(t *testing.T) {
	server := newTestServer(t, Options{}, []entities.Submission{queuedSubmission("sub_1")}, nil)

	rr := server.do(jsonRequest(http.MethodPost, "/submissions/sub_1/captions", `{}`))
	expectError(t, rr, http.StatusUnsupportedMediaType, "Your `Content-Type` must be `multipart/form-data`.")

	rr = server.do(multipartRequest(t, "/submissions/sub_1/captions", "photo", "clip.aac", adtsAudio(20)))
	expectError(t, rr, http.StatusBadRequest, audioRequiredMessage)

	rr = server.do(multipartRequest(t, "/submissions/sub_1/captions", "audio", "clip.png", encodePNG(t)))
	expectError(t, rr, http.StatusBadRequest, audioRequiredMessage)
}

func TestRatingUnknownCaption(t *testing.T) {
	server := newTestServer(t, Options{}, nil, nil)

	expectError(t, server.do(httptest.NewRequest(http.MethodPost, "/captions/nope/like", nil)),
		http.StatusBadRequest, "caption `nope` does not exist")
	expectError(t, server.do(httptest.NewRequest(http.MethodPost, "/captions/nope/hate", nil)),
		http.StatusBadRequest, "caption `nope` does not exist")
}

func TestCurrentCaptionsEmptyBeforeAnyPromotion(t *testing.T) {
	server := newTestServer(t, Options{}, nil, nil)

	rr := server.do(httptest.NewRequest(http.MethodGet, "/captions", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := decodeBody[captionListing](t, rr); body.Captions == nil || len(body.Captions) != 0 {
		t.Fatalf("expected an empty caption array, got %s", rr.Body.String())
	}
}

func TestContestRoundTrip(t *testing.T) {
	server := newTestServer(t, Options{}, nil, nil)

	rr := server.do(multipartRequest(t, "/submissions", "photo", "a.png", encodePNG(t)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	submissionID := decodeBody[map[string]any](t, rr)["id"].(string)

	if rr = server.do(jsonRequest(http.MethodPost, "/next", "")); rr.Code != http.StatusNoContent {
		t.Fatalf("next: expected 204, got %d body=%s", rr.Code, rr.Body.String())
	}
	current, err := server.modules.Submissions.Handler.Queries.CurrentID(t.Context())
	if err != nil || current != submissionID {
		t.Fatalf("expected %s to be current, got %q (%v)", submissionID, current, err)
	}

	req := multipartRequest(t, "/submissions/"+submissionID+"/captions", "audio", "x.aac", adtsAudio(431))
	req.Header.Set("X-Device-Id", "device-1")
	rr = server.do(req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("caption: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	captionID := decodeBody[map[string]any](t, rr)["id"].(string)

	for _, action := range []string{"like", "like", "hate"} {
		rr = server.do(httptest.NewRequest(http.MethodPost, "/captions/"+captionID+"/"+action, nil))
		if rr.Code != http.StatusNoContent {
			t.Fatalf("%s: expected 204, got %d body=%s", action, rr.Code, rr.Body.String())
		}
	}

	for _, path := range []string{"/captions", "/submissions/" + submissionID + "/captions"} {
		rr = server.do(httptest.NewRequest(http.MethodGet, path, nil))
		body := decodeBody[captionListing](t, rr)
		if len(body.Captions) != 1 {
			t.Fatalf("%s: expected one caption, got %s", path, rr.Body.String())
		}
		caption := body.Captions[0]
		if caption.ID != captionID || caption.SubmissionID != submissionID {
			t.Fatalf("%s: unexpected caption %+v", path, caption)
		}
		if caption.Likes != 2 || caption.Hates != 1 || caption.Score != 1 {
			t.Fatalf("%s: expected likes 2 hates 1 score 1, got %+v", path, caption)
		}
		if caption.Duration < 9.9 || caption.Duration > 10.1 {
			t.Fatalf("%s: expected about 10s of audio, got %f", path, caption.Duration)
		}
	}
}
