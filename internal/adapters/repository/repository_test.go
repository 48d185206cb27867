package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/stagebook/internal/adapters/repository"
	"github.com/okian/stagebook/internal/domain/board"
	"github.com/okian/stagebook/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

type backend struct {
	name string
	open func() (repository.KV, func())
}

func backends(t *testing.T) []backend {
	out := []backend{
		{"memory", func() (repository.KV, func()) {
			kv, err := repository.Open(context.Background(), repository.DriverMemory)
			if err != nil {
				t.Fatal(err)
			}
			return kv, func() { _ = kv.Close() }
		}},
		{"badger", func() (repository.KV, func()) {
			kv, err := repository.Open(context.Background(), repository.DriverBadger, repository.WithPath(t.TempDir()))
			if err != nil {
				t.Fatal(err)
			}
			return kv, func() { _ = kv.Close() }
		}},
		{"sqlite", func() (repository.KV, func()) {
			path := filepath.Join(t.TempDir(), "nested", "stagebook.db")
			kv, err := repository.Open(context.Background(), repository.DriverSQLite, repository.WithPath(path))
			if err != nil {
				t.Fatal(err)
			}
			return kv, func() { _ = kv.Close() }
		}},
	}
	if uri := os.Getenv("STAGEBOOK_TEST_MONGO_URI"); uri != "" {
		out = append(out, backend{"mongo", func() (repository.KV, func()) {
			kv, err := repository.Open(context.Background(), repository.DriverMongo,
				repository.WithMongo(uri, "stagebook_test", "kv_"+time.Now().Format("150405.000000")))
			if err != nil {
				t.Fatal(err)
			}
			return kv, func() { _ = kv.Close() }
		}})
	}
	return out
}

func sample() []model.Requirement {
	return []model.Requirement{
		{
			ID: "r1", Title: "DJ night", Description: "", Category: model.CategoryDJ,
			Date: "2025-03-01", Location: "Delhi", Budget: 25000.5, Contact: "dj@x.com",
			CreatedAt: time.Date(2024, 7, 1, 10, 30, 0, 123000000, time.UTC),
		},
		{
			ID: "r0", Title: "Magician \"Max\"", Description: "kids ✨", Category: model.CategoryMagician,
			Date: "2025-01-01", Location: "Mumbai", Budget: 0, Contact: "m@x.com",
			CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestKV(t *testing.T) {
	for _, b := range backends(t) {
		b := b
		Convey("Given a "+b.name+" store", t, func() {
			ctx := context.Background()
			kv, done := b.open()
			defer done()

			Convey("When a key is absent", func() {
				_, ok, err := kv.Get(ctx, "missing")
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})

			Convey("When a value is set and replaced", func() {
				So(kv.Set(ctx, "k", "one"), ShouldBeNil)
				So(kv.Set(ctx, "k", "two"), ShouldBeNil)
				v, ok, err := kv.Get(ctx, "k")

				Convey("Then the latest value is returned", func() {
					So(err, ShouldBeNil)
					So(ok, ShouldBeTrue)
					So(v, ShouldEqual, "two")
				})
			})

			Convey("When a key is removed", func() {
				So(kv.Set(ctx, "k", "v"), ShouldBeNil)
				So(kv.Remove(ctx, "k"), ShouldBeNil)
				So(kv.Remove(ctx, "never-set"), ShouldBeNil)
				_, ok, _ := kv.Get(ctx, "k")
				So(ok, ShouldBeFalse)
			})
		})
	}
}

func TestOpen(t *testing.T) {
	Convey("Given an unknown driver", t, func() {
		_, err := repository.Open(context.Background(), "etcd")
		So(errors.Is(err, repository.ErrUnknownDriver), ShouldBeTrue)
	})

	Convey("Given a closed memory store", t, func() {
		kv := repository.NewMemoryKV()
		So(kv.Close(), ShouldBeNil)
		_, _, err := kv.Get(context.Background(), "k")
		So(errors.Is(err, repository.ErrClosed), ShouldBeTrue)
	})
}

func TestRequirementRepository(t *testing.T) {
	for _, b := range backends(t) {
		b := b
		Convey("Given a requirement repository on "+b.name, t, func() {
			ctx := context.Background()
			kv, done := b.open()
			defer done()
			repo := repository.NewRequirementRepository(kv)

			Convey("When nothing was saved", func() {
				items, err := repo.Load(ctx)
				So(err, ShouldBeNil)
				So(items, ShouldNotBeNil)
				So(items, ShouldBeEmpty)
			})

			Convey("When a collection is saved and loaded", func() {
				So(repo.Save(ctx, sample()), ShouldBeNil)
				items, err := repo.Load(ctx)

				Convey("Then it round-trips losslessly", func() {
					So(err, ShouldBeNil)
					So(len(items), ShouldEqual, 2)
					for i, want := range sample() {
						So(items[i].CreatedAt.Equal(want.CreatedAt), ShouldBeTrue)
						items[i].CreatedAt = want.CreatedAt
						So(items[i], ShouldResemble, want)
					}
				})
			})

			Convey("When an empty collection is saved", func() {
				So(repo.Save(ctx, nil), ShouldBeNil)
				raw, _, _ := kv.Get(ctx, repository.RequirementsKey)
				So(raw, ShouldEqual, "[]")
			})

			Convey("When the stored text is corrupt", func() {
				for _, raw := range []string{"not json", `{"id":"x"}`, `"text"`, `[1,2]`, `[{"id":`} {
					So(kv.Set(ctx, repository.RequirementsKey, raw), ShouldBeNil)
					_, err := repo.Load(ctx)
					So(errors.Is(err, repository.ErrCorrupt), ShouldBeTrue)
				}
			})
		})
	}

	Convey("Given a board over a corrupt store", t, func() {
		ctx := context.Background()
		kv := repository.NewMemoryKV()
		So(kv.Set(ctx, repository.RequirementsKey, "{{{"), ShouldBeNil)
		b := board.New(repository.NewRequirementRepository(kv))

		Convey("Then loading yields an empty board", func() {
			So(b.Load(ctx), ShouldBeEmpty)
		})

		Convey("Then the next post replaces the corrupt value", func() {
			b.Load(ctx)
			_, err := b.Create(ctx, board.Input{
				Title: "t", Category: "DJ", Date: "2025-01-01", Location: "Goa", Budget: "1", Contact: "c",
			})
			So(err, ShouldBeNil)
			items, err := repository.NewRequirementRepository(kv).Load(ctx)
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, 1)
		})
	})
}

func TestAccountRepository(t *testing.T) {
	Convey("Given an account repository", t, func() {
		ctx := context.Background()
		kv := repository.NewMemoryKV()
		repo := repository.NewAccountRepository(kv)

		Convey("When nothing is stored", func() {
			_, ok, err := repo.LoadUser(ctx)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("When a user and profile are stored", func() {
			So(repo.SaveUser(ctx, model.User{Name: "Ava", Role: model.RoleArtist}), ShouldBeNil)
			So(repo.SaveProfile(ctx, model.ArtistProfile{Name: "Ava", Price: 100}), ShouldBeNil)

			u, ok, err := repo.LoadUser(ctx)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(u.Role, ShouldEqual, model.RoleArtist)

			p, ok, err := repo.LoadProfile(ctx)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(p.Price, ShouldEqual, 100)

			Convey("Then clearing the user keeps the profile", func() {
				So(repo.ClearUser(ctx), ShouldBeNil)
				_, ok, _ := repo.LoadUser(ctx)
				So(ok, ShouldBeFalse)
				_, ok, _ = repo.LoadProfile(ctx)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the stored user is corrupt", func() {
			So(kv.Set(ctx, repository.UserKey, "nope"), ShouldBeNil)
			_, ok, err := repo.LoadUser(ctx)
			So(ok, ShouldBeFalse)
			So(errors.Is(err, repository.ErrCorrupt), ShouldBeTrue)
		})
	})
}
