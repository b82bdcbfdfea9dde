package handlers

import (
	"net/http"
	"time"

	"github.com/example/videotrack/internal/platform/analytics"
	"github.com/example/videotrack/internal/platform/api"
	"github.com/example/videotrack/internal/platform/auth"
	"github.com/example/videotrack/internal/platform/httpserver"
	"github.com/example/videotrack/internal/platform/signing"
	"github.com/example/videotrack/internal/progress"
	"github.com/example/videotrack/internal/store"
)

const playbackURLTTL = 15 * time.Minute

type progressView struct {
	WatchedMinutes int       `json:"watched_minutes"`
	Completed      bool      `json:"completed"`
	Percentage     float64   `json:"percentage"`
	LastWatchedAt  time.Time `json:"last_watched_at"`
}

type videoWithProgress struct {
	store.Video
	Progress *progressView `json:"progress,omitempty"`
}

type libraryResponse struct {
	Videos []videoWithProgress `json:"videos"`
	Stats  progress.Stats      `json:"stats"`
}

// ListVideos returns the catalog merged with the caller's progress and
// their aggregate stats: the whole library view in one call.
func ListVideos(catalog store.CatalogStore, progressStore store.ProgressStore, agg *progress.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "AUTH_MISSING", "Missing auth", rid)
			return
		}

		videos, err := catalog.ListVideos(r.Context())
		if err != nil {
			api.Internal(w, rid)
			return
		}
		records, err := progressStore.GetAll(r.Context(), uid)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		stats, err := agg.ComputeStats(r.Context(), uid)
		if err != nil {
			api.Internal(w, rid)
			return
		}

		resp := libraryResponse{Videos: make([]videoWithProgress, 0, len(videos)), Stats: stats}
		for _, v := range videos {
			item := videoWithProgress{Video: v}
			if rec, ok := records[v.ID]; ok {
				item.Progress = toProgressView(rec, v.DurationMinutes)
			}
			resp.Videos = append(resp.Videos, item)
		}
		api.WriteJSON(w, http.StatusOK, resp)
	}
}

type watchResponse struct {
	videoWithProgress
	SignedPlaybackURL string `json:"signed_playback_url"`
}

// WatchVideo returns one video with the caller's progress and a
// short-lived signed playback URL.
func WatchVideo(catalog store.CatalogStore, progressStore store.ProgressStore, signer *signing.Signer, ap *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "AUTH_MISSING", "Missing auth", rid)
			return
		}

		videoID, ok := videoIDParam(r)
		if !ok {
			api.BadRequest(w, "INVALID_VIDEO_ID", "video_id must be a positive integer", rid)
			return
		}

		video, found, err := catalog.GetVideo(r.Context(), videoID)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		if !found {
			api.NotFound(w, "VIDEO_NOT_FOUND", "Video not found", rid)
			return
		}

		resp := watchResponse{videoWithProgress: videoWithProgress{Video: video}, SignedPlaybackURL: video.URL}
		if rec, ok, err := progressStore.Get(r.Context(), uid, videoID); err != nil {
			api.Internal(w, rid)
			return
		} else if ok {
			resp.Progress = toProgressView(rec, video.DurationMinutes)
		}

		if signer != nil {
			signed, err := signing.BuildSignedURL(signer.Sign(video.URL, uid, time.Now().Add(playbackURLTTL)))
			if err != nil {
				api.Internal(w, rid)
				return
			}
			resp.SignedPlaybackURL = signed
		}

		ap.Publish(analytics.SubjectVideoWatched, "video_watched", uid, map[string]any{
			"video_id": videoID,
		})
		api.WriteJSON(w, http.StatusOK, resp)
	}
}

func toProgressView(rec store.ProgressRecord, durationMinutes int) *progressView {
	return &progressView{
		WatchedMinutes: rec.WatchedMinutes,
		Completed:      rec.Completed,
		Percentage:     progress.Percentage(rec.WatchedMinutes, durationMinutes),
		LastWatchedAt:  rec.LastWatchedAt,
	}
}
