package journal_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/crimson-sun/journal/pkg/journal"
)

func Example() {
	d, err := journal.New()
	if err != nil {
		log.Fatal(err)
	}

	ev, err := d.DecodeLine(`{ "timestamp":"2024-07-04T08:15:58Z", "event":"Rank", "Combat":3, "Trade":5, "Explore":8, "Soldier":0, "Exobiologist":1, "Empire":2, "Federation":4, "CQC":0 }`, 1)
	if err != nil {
		log.Fatal(err)
	}

	rank := ev.(journal.Rank)
	fmt.Printf("Combat: %s, Trade: %s\n", rank.Combat, rank.Trade)
	fmt.Println("Federation:", rank.Federation)
	// Output:
	// Combat: Competent, Trade: Broker
	// Federation: Petty Officer
}

func ExampleDecoder_DecodeAll() {
	d, err := journal.New()
	if err != nil {
		log.Fatal(err)
	}

	input := strings.Join([]string{
		`{ "timestamp":"2024-07-04T08:15:41Z", "event":"Commander", "FID":"F1908163", "Name":"OMGasm" }`,
		`{ "timestamp":"2024-07-04T08:16:05Z", "event":"Music", "MusicTrack":"NoTrack" }`,
		`{ "timestamp":"2024-07-04T08:16:05Z", "event":"Rank", "Combat":9 }`,
	}, "\n")

	results, err := d.DecodeAll(context.Background(), strings.NewReader(input), "Journal.01.log")
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		switch ev := r.Event.(type) {
		case journal.Commander:
			fmt.Println(r.Line, ev.Name, ev.FID)
		case journal.UnknownEvent:
			fmt.Println(r.Line, "unknown", ev.Kind())
		case nil:
			fmt.Println(r.Line, "error", errors.Is(r.Err, journal.ErrInvalidOrdinal))
		}
	}
	// Output:
	// 1 OMGasm F~~~~~~
	// 2 unknown Music
	// 3 error true
}
