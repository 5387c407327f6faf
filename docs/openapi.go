// Package docs serves the OpenAPI description of the league API. The
// document is maintained by hand alongside the handlers.
package docs

import "net/http"

func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPIDocument))
	}
}

const openAPIDocument = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Swiss League API",
    "description": "Swiss-system chess league: pairings, results, standings and snapshot exports.",
    "version": "1.0.0"
  },
  "paths": {
    "/api/rules": {
      "get": {
        "summary": "League rules text",
        "responses": {"200": {"description": "Ordered rule paragraphs"}}
      }
    },
    "/api/tournaments/{tournamentID}/state": {
      "get": {
        "summary": "Full league state",
        "parameters": [{"$ref": "#/components/parameters/tournamentID"}],
        "responses": {
          "200": {"description": "Rules, players, rounds, standings and canGenerateNextRound"},
          "404": {"description": "Tournament not found"}
        }
      }
    },
    "/api/tournaments/{tournamentID}/players": {
      "get": {
        "summary": "Registered players",
        "parameters": [{"$ref": "#/components/parameters/tournamentID"}],
        "responses": {"200": {"description": "Player list in seed order"}}
      }
    },
    "/api/tournaments/{tournamentID}/rounds": {
      "get": {
        "summary": "Round history",
        "parameters": [{"$ref": "#/components/parameters/tournamentID"}],
        "responses": {"200": {"description": "Rounds with pairings plus canGenerateNextRound"}}
      },
      "post": {
        "summary": "Generate the next round",
        "parameters": [{"$ref": "#/components/parameters/tournamentID"}],
        "responses": {
          "201": {"description": "New round; rematchesAllowed marks a relaxed pairing pass"},
          "409": {"description": "Latest round still has undecided matches"}
        }
      }
    },
    "/api/tournaments/{tournamentID}/standings": {
      "get": {
        "summary": "Current standings",
        "parameters": [{"$ref": "#/components/parameters/tournamentID"}],
        "responses": {"200": {"description": "Ranked standings recomputed from stored results"}}
      }
    },
    "/api/tournaments/{tournamentID}/matches/{matchID}": {
      "put": {
        "summary": "Record or change a match result",
        "parameters": [
          {"$ref": "#/components/parameters/tournamentID"},
          {"name": "matchID", "in": "path", "required": true, "schema": {"type": "integer"}}
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "result": {"type": "string", "enum": ["UNPLAYED", "PLAYER1", "PLAYER2", "DRAW", "BYE"]}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Result stored"},
          "400": {"description": "Unknown result value or bye pairing result change"},
          "404": {"description": "Match not found in this tournament"}
        }
      }
    },
    "/api/tournaments/{tournamentID}/players/{playerID}/adjustment": {
      "put": {
        "summary": "Set an organizer score adjustment",
        "parameters": [
          {"$ref": "#/components/parameters/tournamentID"},
          {"name": "playerID", "in": "path", "required": true, "schema": {"type": "integer"}}
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {"addScore": {"description": "Number or numeric string; anything else is stored as 0"}}
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Stored addScore value"},
          "404": {"description": "Player not found in this tournament"}
        }
      }
    },
    "/api/tournaments/{tournamentID}/reset": {
      "post": {
        "summary": "Reset the league to its seeded first round",
        "parameters": [{"$ref": "#/components/parameters/tournamentID"}],
        "responses": {"200": {"description": "Adjustments cleared and round history re-seeded"}}
      }
    },
    "/api/tournaments/{tournamentID}/export": {
      "get": {
        "summary": "Download a CSV snapshot",
        "parameters": [{"$ref": "#/components/parameters/tournamentID"}],
        "responses": {"200": {"description": "CSV attachment with players, rounds and standings"}}
      }
    },
    "/api/tournaments/{tournamentID}/export/upload": {
      "post": {
        "summary": "Publish a CSV snapshot to object storage",
        "parameters": [{"$ref": "#/components/parameters/tournamentID"}],
        "responses": {
          "201": {"description": "Object key and public URL of the uploaded snapshot"},
          "503": {"description": "Object storage is not configured"}
        }
      }
    }
  },
  "components": {
    "parameters": {
      "tournamentID": {
        "name": "tournamentID",
        "in": "path",
        "required": true,
        "schema": {"type": "integer"}
      }
    }
  }
}
`
