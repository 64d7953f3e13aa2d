package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/menuka400/vision-guided-smart-car-system/car"
	"github.com/menuka400/vision-guided-smart-car-system/comms"
)

type recordingDrivetrain struct {
	codes []int
}

func (d *recordingDrivetrain) ProcessMovement(value string) { d.Dispatch(car.CmdStop) }
func (d *recordingDrivetrain) Dispatch(code int)            { d.codes = append(d.codes, code) }
func (d *recordingDrivetrain) State() car.State             { return car.State{} }

func postForm(handler http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandGestureHandler(t *testing.T) {
	device := new(recordingDrivetrain)
	ENV.Conductor = comms.NewConductor(device)

	Convey("a recognised gesture dispatches its command", t, func() {
		rr := postForm(HandGestureHandler, "/hand-gesture", url.Values{"gesture": {"left"}})

		So(rr.Code, ShouldEqual, http.StatusOK)
		So(rr.Body.String(), ShouldEqual, "OK")
		So(device.codes[len(device.codes)-1], ShouldEqual, car.CmdHandLeftRaised)
	})

	Convey("an unknown gesture still answers OK but stops the car", t, func() {
		rr := postForm(HandGestureHandler, "/hand-gesture", url.Values{"gesture": {"wave"}})

		So(rr.Code, ShouldEqual, http.StatusOK)
		So(device.codes[len(device.codes)-1], ShouldEqual, car.CmdStop)
	})

	Convey("a missing gesture field is a client error", t, func() {
		rr := postForm(HandGestureHandler, "/hand-gesture", url.Values{})

		So(rr.Code, ShouldEqual, http.StatusBadRequest)
	})
}

func TestPersonTrackingHandler(t *testing.T) {
	device := new(recordingDrivetrain)
	ENV.Conductor = comms.NewConductor(device)

	Convey("a recognised action dispatches its command", t, func() {
		rr := postForm(PersonTrackingHandler, "/person-tracking", url.Values{"action": {"track_right"}})

		So(rr.Code, ShouldEqual, http.StatusOK)
		So(device.codes[len(device.codes)-1], ShouldEqual, car.CmdTrackRight)
	})

	Convey("a missing action field is a client error", t, func() {
		rr := postForm(PersonTrackingHandler, "/person-tracking", url.Values{})

		So(rr.Code, ShouldEqual, http.StatusBadRequest)
	})
}
