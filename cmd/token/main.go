// Command token prints an access token obtained from the authorization server.
//
//	AUTH_BASE_URL=http://localhost:8080 token -u maria@gmail.com -p 123456
//
// With -get the token is used to fetch the URL instead and the response is printed:
//
//	token -u maria@gmail.com -p 123456 -get http://localhost:8081/orders/1
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"commerce-api/internal/authclient"
)

func main() {
	username := flag.String("u", "", "username (email)")
	password := flag.String("p", "", "password")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	getURL := flag.String("get", "", "GET this URL with the token and print the response")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: token -u <username> -p <password>")
		os.Exit(2)
	}

	client, err := authclient.New(authclient.Config{
		BaseURL:      getEnv("AUTH_BASE_URL", "http://localhost:8080"),
		ClientID:     getEnv("AUTH_CLIENT_ID", "myclientid"),
		ClientSecret: getEnv("AUTH_CLIENT_SECRET", "myclientsecret"),
		Scopes:       strings.Fields(getEnv("AUTH_SCOPES", "")),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	tok, err := client.AccessToken(ctx, *username, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *getURL == "" {
		fmt.Println(tok)
		return
	}
	if err := get(ctx, *getURL, tok); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func get(ctx context.Context, url, tok string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	authclient.Authorize(req, tok)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	fmt.Fprintln(os.Stderr, resp.Status)
	_, err = io.Copy(os.Stdout, resp.Body)
	return err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
