// Package journal decodes Elite Dangerous journal files into typed events.
//
// Quick start:
//
//	d, err := journal.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ev, err := d.DecodeLine(`{"event":"Rank","Combat":3,"Trade":5,...}`, 1)
//	if rank, ok := ev.(journal.Rank); ok {
//	    fmt.Println(rank.Trade) // Broker
//	}
//
// Every journal line decodes to exactly one Event or one *LineError. Kinds
// without a schema decode to UnknownEvent with every field kept. A Decoder is
// immutable and safe for concurrent use.
package journal
