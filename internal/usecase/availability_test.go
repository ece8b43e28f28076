package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/0FL01/docker-pg-dump-auto/internal/domain"
)

func TestAvailability(t *testing.T) {
	Convey("Given an Availability checker", t, func() {
		ctx := context.Background()
		target := domain.Target{Name: "app-postgres", User: "app"}

		Convey("CheckExists", func() {
			Convey("When the container is running", func() {
				rt := &fakeRuntime{running: map[string]bool{"app-postgres": true}}
				checker := NewAvailability(rt, nopLogger{}, time.Minute)

				Convey("It should report the target as present", func() {
					So(checker.CheckExists(ctx, "app-postgres"), ShouldBeTrue)
				})
			})

			Convey("When the container is not running", func() {
				rt := &fakeRuntime{running: map[string]bool{}}
				checker := NewAvailability(rt, nopLogger{}, time.Minute)

				Convey("It should report the target as absent", func() {
					So(checker.CheckExists(ctx, "app-postgres"), ShouldBeFalse)
				})
			})

			Convey("When the runtime lookup itself fails", func() {
				rt := &fakeRuntime{runningErr: errors.New("daemon unreachable")}
				checker := NewAvailability(rt, nopLogger{}, time.Minute)

				Convey("It should report the target as absent", func() {
					So(checker.CheckExists(ctx, "app-postgres"), ShouldBeFalse)
				})
			})
		})

		Convey("CheckReady", func() {
			Convey("When the readiness probe succeeds", func() {
				rt := &fakeRuntime{}
				checker := NewAvailability(rt, nopLogger{}, time.Minute)

				Convey("It should report the service as ready", func() {
					So(checker.CheckReady(ctx, target), ShouldBeTrue)

					calls := rt.callsFor("app-postgres")
					So(len(calls), ShouldEqual, 1)
					So(calls[0], ShouldResemble, []string{"app-postgres", "pg_isready", "--username", "app"})
				})
			})

			Convey("When the probe exits non-zero", func() {
				rt := &fakeRuntime{execErr: errors.New("exit status 2")}
				checker := NewAvailability(rt, nopLogger{}, time.Minute)

				Convey("It should report the service as not ready", func() {
					So(checker.CheckReady(ctx, target), ShouldBeFalse)
				})
			})
		})
	})
}
