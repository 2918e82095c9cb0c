// scripts/gen-sample.go - Generate a messy sample contact file for manual runs
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

func main() {
	path := "sample.vcf"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	count := 500
	if v := os.Getenv("VCF_SAMPLE_CONTACTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "Error: invalid VCF_SAMPLE_CONTACTS: %q\n", v)
			os.Exit(1)
		}
		count = n
	}

	gofakeit.Seed(42)
	rng := rand.New(rand.NewSource(42))

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", path, err)
		os.Exit(1)
	}
	w := bufio.NewWriter(f)

	fmt.Printf("Generating %d contacts into %s...\n", count, path)

	duplicates := 0
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		phone := gofakeit.Phone()
		writeCard(w, name, phone, rng)

		// Every tenth contact shows up again with different formatting,
		// the way merged exports from two phones do.
		if i%10 == 0 {
			writeCard(w, strings.ToUpper(name), reformatPhone(phone), rng)
			duplicates++
		}
		if rng.Intn(20) == 0 {
			fmt.Fprintln(w, "corrupted text between records")
		}
	}

	// A contact without any phone number.
	fmt.Fprintln(w, "BEGIN:VCARD")
	fmt.Fprintln(w, "VERSION:2.1")
	fmt.Fprintf(w, "FN:%s\n", gofakeit.Name())
	fmt.Fprintf(w, "EMAIL:%s\n", gofakeit.Email())
	fmt.Fprintln(w, "END:VCARD")

	// A truncated export: the final record never ends.
	fmt.Fprintln(w, "BEGIN:VCARD")
	fmt.Fprintln(w, "FN:truncated export")

	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote %d contacts (%d duplicated) to %s\n", count+duplicates+2, duplicates, path)
}

func writeCard(w *bufio.Writer, name, phone string, rng *rand.Rand) {
	fmt.Fprintln(w, "BEGIN:VCARD")
	fmt.Fprintln(w, "VERSION:2.1")
	fmt.Fprintf(w, "N:%s;;;\n", strings.ReplaceAll(name, " ", ";"))
	fmt.Fprintf(w, "FN:%s\n", name)
	fmt.Fprintf(w, "TEL;CELL:%s\n", phone)
	if rng.Intn(3) == 0 {
		fmt.Fprintf(w, "NOTE:%s\n", gofakeit.Sentence(6))
	}
	if rng.Intn(4) == 0 {
		fmt.Fprintf(w, "ORG:%s\n", gofakeit.Company())
	}
	if rng.Intn(4) == 0 {
		fmt.Fprintf(w, "ADR;HOME:;;%s;%s;;%s;\n", gofakeit.Street(), gofakeit.City(), gofakeit.Zip())
	}
	if rng.Intn(5) == 0 {
		// Base64 photo payload folded across bare continuation lines,
		// blank-line terminated, as Android exports write it.
		fmt.Fprintln(w, "PHOTO;ENCODING=BASE64;JPEG:/9j/4AAQSkZJRgABAQEAYABg")
		fmt.Fprintln(w, " AAD/2wBDAAgGBgcGBQgHBwcJCQgKDBQNDAsLDBkSEw8UHRofHh0a")
		fmt.Fprintln(w, "HBwgJC4nICIsIxwcKDcpLDAxNDQ0Hyc5PTgyPC4zNDL/wAALCAAB")
		fmt.Fprintln(w, "")
	}
	fmt.Fprintln(w, "END:VCARD")
}

// reformatPhone renders the same number the way a different exporter
// would, digits unchanged.
func reformatPhone(phone string) string {
	if len(phone) == 10 {
		return fmt.Sprintf("(%s) %s-%s", phone[:3], phone[3:6], phone[6:])
	}
	return "+" + phone
}
