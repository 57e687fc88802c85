// highscore_demo plays a pretend game: it posts a random score and prints the top 10
package main

import (
	"context"
	"errors"
	"flag"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/CLDWare/aanwezigheid/config"
	"github.com/CLDWare/aanwezigheid/pkg/highscoreclient"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

func main() {
	godotenv.Load()
	config.ForceReload()
	cfg := config.Get()

	game := flag.String("game", "lunarlander", "game to post the score for")
	name := flag.String("name", "Mark", "name of the player")
	server := flag.String("server", "http://"+cfg.GetHighscoreAddress(), "url of the highscore server")
	debug := flag.Bool("debug", false, "dump http traffic")
	flag.Parse()

	var opts []highscoreclient.Option
	if *debug {
		logger.SetLevel("debug")
		opts = append(opts, highscoreclient.WithDebug())
	}
	client := highscoreclient.New(*game, *server, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	score := rand.Int64N(101)
	color.Green("Hurray! %d! You got a highscore!", score)

	if err := client.AddHighscore(ctx, *name, score); err != nil {
		if errors.Is(err, highscoreclient.ErrUnreachable) {
			color.Red("Highscore server is not running at %s", *server)
		} else {
			color.Red("%v", err)
		}
		os.Exit(1)
	}

	scores, err := client.Highscores(ctx)
	if err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}

	color.Cyan("Top %d of %s", len(scores), *game)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Name", "Score"})
	for i, s := range scores {
		table.Append([]string{strconv.Itoa(i + 1), s.Name, strconv.FormatInt(s.Score, 10)})
	}
	table.Render()
}
