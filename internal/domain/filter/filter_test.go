package filter_test

import (
	"testing"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/filter"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestVisible(t *testing.T) {
	convey.Convey("Given players and a filter state", t, func() {
		mahomes := model.Player{ID: "1", FirstName: "Patrick", LastName: "Mahomes", Position: model.QB}
		lookalike := model.Player{ID: "2", FirstName: "Max", LastName: "Mahomes-like", Position: model.WR}
		kelce := model.Player{ID: "3", FirstName: "Travis", LastName: "Kelce", Position: model.TE}

		convey.Convey("An empty state shows everything", func() {
			s := filter.State{}
			convey.So(filter.Visible(mahomes, s), convey.ShouldBeTrue)
			convey.So(filter.Visible(lookalike, s), convey.ShouldBeTrue)
			convey.So(filter.Visible(kelce, s), convey.ShouldBeTrue)
		})

		convey.Convey("Name and position predicates hold independently", func() {
			s := filter.State{NameQuery: "mah", Position: model.QB}
			convey.So(filter.Visible(mahomes, s), convey.ShouldBeTrue)
			// Name matches but position does not.
			convey.So(filter.Visible(lookalike, s), convey.ShouldBeFalse)
			// Position alone is not enough either.
			s2 := filter.State{NameQuery: "kel", Position: model.QB}
			convey.So(filter.Visible(kelce, s2), convey.ShouldBeFalse)
		})

		convey.Convey("Name matching is case-insensitive substring", func() {
			convey.So(filter.Visible(mahomes, filter.State{NameQuery: "MAHOM"}), convey.ShouldBeTrue)
			convey.So(filter.Visible(mahomes, filter.State{NameQuery: "patrick mah"}), convey.ShouldBeTrue)
			convey.So(filter.Visible(mahomes, filter.State{NameQuery: "brady"}), convey.ShouldBeFalse)
		})

		convey.Convey("Whitespace-only queries match everything", func() {
			convey.So(filter.Visible(kelce, filter.State{NameQuery: "   "}), convey.ShouldBeTrue)
		})

		convey.Convey("Apply preserves order and drops hidden players", func() {
			got := filter.Apply([]model.Player{mahomes, lookalike, kelce}, filter.State{NameQuery: "mah"})
			convey.So(len(got), convey.ShouldEqual, 2)
			convey.So(got[0].ID, convey.ShouldEqual, "1")
			convey.So(got[1].ID, convey.ShouldEqual, "2")
		})
	})
}
