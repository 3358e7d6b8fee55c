// Command froggi-fetch connects to a froggi server, requests a page, and
// prints its raw FML (or, with -html, its rendered HTML), plus a summary
// of its embedded items on stderr.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/zphixon/froggi"
	"github.com/zphixon/froggi/markup"
)

func main() {
	addr := flag.String("addr", fmt.Sprintf("127.0.0.1:%d", froggi.DefaultPort), "server address")
	path := flag.String("path", "/", "page path to request")
	html := flag.Bool("html", false, "render the page to HTML instead of printing raw FML")
	flag.Parse()

	resp, err := froggi.SendRequest(*addr, *path)
	if err != nil {
		log.Fatalf("froggi-fetch: %v", err)
	}

	fmt.Fprintf(os.Stderr, "froggi-fetch: got %d item(s)\n", len(resp.Items()))
	for _, item := range resp.Items() {
		fmt.Fprintf(os.Stderr, "froggi-fetch: item %q (%d bytes)\n", item.Name, len(item.Payload))
	}

	if !*html {
		fmt.Println(resp.Page())
		return
	}

	page, errs := markup.Parse(resp.Page())
	if errs != nil {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "froggi-fetch: markup error: %v\n", e)
		}
		os.Exit(1)
	}
	fmt.Println(markup.ToHTML(page))
}
