package usecase

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/0FL01/docker-pg-dump-auto/internal/adapter/compressor"
	"github.com/0FL01/docker-pg-dump-auto/internal/domain"
)

func TestDumper(t *testing.T) {
	Convey("Given a Dumper", t, func() {
		ctx := context.Background()
		target := domain.Target{Name: "app-postgres", User: "app"}
		fixedNow := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		now := func() time.Time { return fixedNow }

		tempDir, err := os.MkdirTemp("", "dumper_test")
		So(err, ShouldBeNil)
		defer os.RemoveAll(tempDir)

		Convey("When the dump pipeline succeeds", func() {
			dumpBytes := []byte("-- PostgreSQL database cluster dump\nCREATE ROLE app;\n")
			rt := &fakeRuntime{outputs: map[string][]byte{"app-postgres": dumpBytes}}
			dumper := NewDumper(rt, compressor.NewGzip(), nopLogger{}, tempDir, time.Minute, now)

			path, err := dumper.Dump(ctx, target)

			Convey("It should return the timestamped candidate path", func() {
				So(err, ShouldBeNil)
				So(path, ShouldEqual, filepath.Join(tempDir, "app-postgres-backup-2024-03-01T10-00-00.sql.gz"))
			})

			Convey("It should run the dump command as the configured principal", func() {
				So(err, ShouldBeNil)
				calls := rt.callsFor("app-postgres")
				So(len(calls), ShouldEqual, 1)
				So(calls[0], ShouldResemble, []string{"app-postgres", "pg_dumpall", "--username", "app"})
			})

			Convey("It should write a valid compressed artifact", func() {
				So(err, ShouldBeNil)

				f, err := os.Open(path)
				So(err, ShouldBeNil)
				defer f.Close()

				zr, err := gzip.NewReader(f)
				So(err, ShouldBeNil)
				defer zr.Close()

				var decompressed bytes.Buffer
				_, err = decompressed.ReadFrom(zr)
				So(err, ShouldBeNil)
				So(decompressed.Bytes(), ShouldResemble, dumpBytes)
			})
		})

		Convey("When the dump command fails", func() {
			rt := &fakeRuntime{execErr: errors.New("exit status 1")}
			dumper := NewDumper(rt, compressor.NewGzip(), nopLogger{}, tempDir, time.Minute, now)

			path, err := dumper.Dump(ctx, target)

			Convey("It should return a dump failure", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, domain.ErrDumpFailed), ShouldBeTrue)
				So(path, ShouldBeEmpty)
			})

			Convey("It should leave no candidate file behind", func() {
				So(err, ShouldNotBeNil)

				entries, readErr := os.ReadDir(tempDir)
				So(readErr, ShouldBeNil)
				So(len(entries), ShouldEqual, 0)
			})
		})

		Convey("When the backup directory does not exist", func() {
			rt := &fakeRuntime{}
			dumper := NewDumper(rt, compressor.NewGzip(), nopLogger{}, filepath.Join(tempDir, "missing"), time.Minute, now)

			_, err := dumper.Dump(ctx, target)

			Convey("It should return a dump failure without invoking the runtime", func() {
				So(errors.Is(err, domain.ErrDumpFailed), ShouldBeTrue)
				So(len(rt.execCalls), ShouldEqual, 0)
			})
		})
	})
}
