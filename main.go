package main

import (
	"log"
	"net/http"
	"os"

	"webshim/fetch"
	"webshim/inspect"
	"webshim/internal/config"
	"webshim/internal/version"
	"webshim/server"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			log.Println(version.GetVersion())
			return
		case "inspect":
			if len(os.Args) < 3 {
				log.Fatalf("Usage: %s inspect <payload-file>", os.Args[0])
			}
			if err := inspect.Run(os.Args[2]); err != nil {
				log.Fatalf("Failed to inspect payload: %s", err)
			}
			return
		default:
			log.Fatalf("Unknown command: %s", os.Args[1])
		}
	}

	cfg, err := config.MustLoad()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}

	app := server.New(cfg)

	if err := app.Handle("GET", "/healthz", handleHealth); err != nil {
		log.Fatalf("Failed to register route: %s", err)
	}
	if err := app.Handle("POST", "/form", handleForm); err != nil {
		log.Fatalf("Failed to register route: %s", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Server stopped: %s", err)
	}
}

func handleHealth(req *fetch.Request) *fetch.Response {
	return fetch.Text(http.StatusOK, "ok")
}

// handleForm echoes back the decoded field names of a submitted form,
// whether it arrived as multipart/form-data or urlencoded.
func handleForm(req *fetch.Request) *fetch.Response {
	fd, err := req.FormData()
	if err != nil {
		return fetch.Error(http.StatusBadRequest, err.Error())
	}

	resp, err := fetch.JSON(http.StatusOK, map[string]any{
		"fields": fd.Keys(),
		"count":  fd.Len(),
	})
	if err != nil {
		return fetch.Error(http.StatusInternalServerError, "")
	}
	return resp
}
