// Command akomctl runs the triage analyzer from the command line: it
// analyzes or transcribes single reports and generates or scores labeled
// datasets.
//
// Usage:
//
//	akomctl analyze "Avcılar'da bina çöktü, enkaz altında insanlar var"
//	echo "Kadıköy'de su baskını" | akomctl analyze --locate
//	akomctl transcribe ihbar.wav
//	akomctl generate -n 500 --seed 42 -o ihbarlar.csv
//	akomctl evaluate ihbarlar.csv
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
