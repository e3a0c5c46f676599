package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingLifecycle(t *testing.T) {
	r := newTestServer(t)
	alice := seedUser(t, "alice", false)
	bob := seedUser(t, "bob", false)
	manager := seedUser(t, "manager", true)
	room := seedRoom(t, "Creative Studio", 8, 60)

	aliceToken := bearer(t, alice)
	bobToken := bearer(t, bob)
	managerToken := bearer(t, manager)

	createReq := map[string]interface{}{
		"room_id":      room.ID,
		"booking_date": "2030-05-10",
		"start_time":   "09:00",
		"end_time":     "10:00",
	}

	var bookingID float64
	t.Run("create", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/bookings", aliceToken, createReq)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		data := decodeBody(t, w)["data"].(map[string]interface{})
		bookingID = data["id"].(float64)
		assert.Equal(t, "upcoming", data["status"])
		assert.Equal(t, "pending", data["approval_status"])
		assert.Equal(t, "2030-05-10", data["booking_date"])
	})

	t.Run("slot conflict", func(t *testing.T) {
		conflicting := map[string]interface{}{
			"room_id":      room.ID,
			"booking_date": "2030-05-10",
			"start_time":   "09:30",
			"end_time":     "10:30",
		}
		w := doRequest(t, r, http.MethodPost, "/api/bookings", bobToken, conflicting)
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "conflict", decodeBody(t, w)["kind"])
	})

	t.Run("check availability", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/bookings/check-availability", bobToken, createReq)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["available"])

		free := map[string]interface{}{
			"room_id":      room.ID,
			"booking_date": "2030-05-10",
			"start_time":   "10:00",
			"end_time":     "11:00",
		}
		w = doRequest(t, r, http.MethodPost, "/api/bookings/check-availability", bobToken, free)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeBody(t, w)["available"])
	})

	t.Run("my bookings", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/bookings/my", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.EqualValues(t, 1, body["total"])

		w = doRequest(t, r, http.MethodGet, "/api/bookings/my", bobToken, nil)
		assert.EqualValues(t, 0, decodeBody(t, w)["total"])
	})

	t.Run("room schedule", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/bookings/room/%d", room.ID), bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1, decodeBody(t, w)["total"])

		w = doRequest(t, r, http.MethodGet, "/api/bookings/room/9999", bobToken, nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("detail access", func(t *testing.T) {
		path := fmt.Sprintf("/api/bookings/%.0f", bookingID)

		w := doRequest(t, r, http.MethodGet, path, aliceToken, nil)
		assert.Equal(t, http.StatusOK, w.Code, "organizer sees it")

		w = doRequest(t, r, http.MethodGet, path, managerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code, "manager sees it")

		w = doRequest(t, r, http.MethodGet, path, bobToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, "strangers do not")
	})

	t.Run("update is organizer-only", func(t *testing.T) {
		path := fmt.Sprintf("/api/bookings/%.0f", bookingID)
		reschedule := map[string]interface{}{"start_time": "11:00", "end_time": "12:00"}

		w := doRequest(t, r, http.MethodPut, path, bobToken, reschedule)
		require.Equal(t, http.StatusForbidden, w.Code)

		w = doRequest(t, r, http.MethodPut, path, aliceToken, reschedule)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "11:00", data["start_time"])
	})

	t.Run("cancel", func(t *testing.T) {
		path := fmt.Sprintf("/api/bookings/%.0f/cancel", bookingID)

		w := doRequest(t, r, http.MethodPost, path, bobToken, nil)
		require.Equal(t, http.StatusForbidden, w.Code)

		w = doRequest(t, r, http.MethodPost, path, aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "cancelled", data["status"])

		w = doRequest(t, r, http.MethodPost, path, aliceToken, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_state", decodeBody(t, w)["kind"])
	})

	t.Run("delete", func(t *testing.T) {
		path := fmt.Sprintf("/api/bookings/%.0f", bookingID)

		w := doRequest(t, r, http.MethodDelete, path, aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, r, http.MethodGet, path, aliceToken, nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApprovalEndpoints(t *testing.T) {
	r := newTestServer(t)
	alice := seedUser(t, "alice", false)
	manager := seedUser(t, "manager", true)
	room := seedRoom(t, "Board Room", 16, 120)

	aliceToken := bearer(t, alice)
	managerToken := bearer(t, manager)

	mkBooking := func(start, end string) float64 {
		w := doRequest(t, r, http.MethodPost, "/api/bookings", aliceToken, map[string]interface{}{
			"room_id":      room.ID,
			"booking_date": "2030-05-10",
			"start_time":   start,
			"end_time":     end,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64)
	}

	first := mkBooking("09:00", "10:00")
	second := mkBooking("10:00", "11:00")

	t.Run("pending queue is manager-only", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/bookings/pending", aliceToken, nil)
		require.Equal(t, http.StatusForbidden, w.Code)

		w = doRequest(t, r, http.MethodGet, "/api/bookings/pending", managerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.EqualValues(t, 2, body["total"])
		rows := body["data"].([]interface{})
		require.Len(t, rows, 2)
		firstRow := rows[0].(map[string]interface{})
		assert.Equal(t, "Board Room", firstRow["room_name"])
		assert.Equal(t, "alice", firstRow["organizer_name"])
	})

	t.Run("approve", func(t *testing.T) {
		path := fmt.Sprintf("/api/bookings/%.0f/approve", first)

		w := doRequest(t, r, http.MethodPost, path, aliceToken, nil)
		require.Equal(t, http.StatusForbidden, w.Code)

		w = doRequest(t, r, http.MethodPost, path, managerToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "approved", data["approval_status"])
		assert.Equal(t, "upcoming", data["status"])

		w = doRequest(t, r, http.MethodPost, path, managerToken, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_state", decodeBody(t, w)["kind"])
	})

	t.Run("reject with a reason", func(t *testing.T) {
		path := fmt.Sprintf("/api/bookings/%.0f/reject", second)

		w := doRequest(t, r, http.MethodPost, path, managerToken,
			map[string]interface{}{"reason": "room reserved for maintenance"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "rejected", data["approval_status"])
		assert.Equal(t, "cancelled", data["status"])
		assert.Equal(t, "room reserved for maintenance", data["rejection_reason"])
	})

	t.Run("queue empties after decisions", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/bookings/pending", managerToken, nil)
		assert.EqualValues(t, 0, decodeBody(t, w)["total"])
	})
}
