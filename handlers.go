package main

import (
	"net/http"
)

// HandGestureHandler accepts the vision system's POST contract: a form field
// naming the detected gesture. Unknown gestures stop the car rather than
// erroring; only a missing field is a client error.
func HandGestureHandler(w http.ResponseWriter, r *http.Request) {
	gesture := r.PostFormValue("gesture")
	if gesture == "" {
		http.Error(w, "Missing gesture parameter", http.StatusBadRequest)
		return
	}

	ENV.Conductor.ProcessGesture(gesture)
	w.Write([]byte("OK"))
}

// PersonTrackingHandler accepts orientation adjustments from the person
// tracker, same contract as the gesture endpoint.
func PersonTrackingHandler(w http.ResponseWriter, r *http.Request) {
	action := r.PostFormValue("action")
	if action == "" {
		http.Error(w, "Missing action parameter", http.StatusBadRequest)
		return
	}

	ENV.Conductor.ProcessTracking(action)
	w.Write([]byte("OK"))
}
