package main

import (
	"flag"
	"fmt"

	"x-scraper-go/global"
	"x-scraper-go/models"
	"x-scraper-go/models/cookiejar"
	"x-scraper-go/models/hooks"
	"x-scraper-go/utils"
	client "x-scraper-go/x"
	"x-scraper-go/x/castle"

	"github.com/DeRuina/timberjack"
	"github.com/fatih/color"
	"github.com/imroc/req/v3"
)

var (
	logger     = utils.GetLogger(global.GetLogger(), "main", nil)
	xClient    *client.Client
	conf       *models.Configuration
	jar        *cookiejar.Jar
	fileLogger = &timberjack.Logger{
		Filename:         "logs/latest.log",
		MaxSize:          100, // megabytes
		MaxBackups:       30,  // backups
		MaxAge:           7,   // days
		Compress:         false,
		LocalTime:        true,
		BackupTimeFormat: "20060102-150405",
	}
)

func init() {
	global.GetLogger().AddHook(hooks.NewLogFileRotateHook(fileLogger))
	if !utils.IsFileEmpty("logs/latest.log") {
		fileLogger.Rotate()
	}
	req.SetDefaultClient(req.DefaultClient().SetLogger(utils.GetLogger(global.GetLogger(), "network", nil)).EnableDebugLog())
	var err error
	conf, err = models.NewConfiguration()
	if err != nil {
		panic(err)
	}
	jar = cookiejar.New(&cookiejar.Options{
		PublicSuffixList: nil,
		DefaultCookies:   conf.Twitter.Cookies,
	})
	xClient = client.GetNewClient(jar, conf.Twitter.BearerToken, conf.Twitter.GuestToken, conf.Twitter.UserAgent, conf.Scraper.Proxy, conf.Scraper.TimeoutSeconds)
	conf.Twitter.UserAgent = xClient.GetUserAgent()
}

func main() {
	var (
		screenName = flag.String("user", "", "screen name to scrape")
		maxTweets  = flag.Int("count", 40, "maximum number of tweets to fetch")
		tokenOnly  = flag.Bool("token", false, "only mint a fingerprint token and exit")
	)
	flag.Parse()
	defer fileLogger.Close()
	defer func() {
		var ck = jar.AllPersistentEntries()
		if ck != nil {
			conf.Twitter.Cookies = ck
		}
		t := xClient.GetGuestToken()
		if t != "" {
			conf.Twitter.GuestToken = t
		}
		conf.Save()
	}()
	logger.Info("It's X-Scraper-Go!!!!!")
	logger.Warnf("This is a %s scraping client for X/Twitter.", color.New(color.FgHiRed).Sprint("FREE"))
	logger.Info("Under the AGPLv3 License.")
	logger.Infof("Commit hash: %s", global.GitCommit)
	logger.Infof("Build timestamp: %s", global.BuildTime)

	if *tokenOnly {
		ct, err := castle.Generate(xClient.GetUserAgent())
		if err != nil {
			logger.Fatalf("Failed to generate fingerprint token: %v", err)
		}
		fmt.Printf("token: %s\ncuid:  %s\n", ct.Token, ct.CUID)
		return
	}

	err, refreshed := xClient.RefreshGuestSessionIfNeeded()
	if err != nil {
		logger.Fatalf("Failed to activate guest session: %v", err)
	}
	if refreshed {
		logger.Trace("Guest session refreshed.")
	}

	if *screenName == "" {
		logger.Warn("No screen name given (-user), nothing to scrape.")
		return
	}
	err, user := xClient.GetUserByScreenName(*screenName)
	if err != nil {
		logger.Fatalf("GetUserByScreenName error: %v", err)
	}
	r := user.User.Result
	logger.Infof("@%s (%s): %d followers, %d tweets",
		r.Legacy.ScreenName, r.Legacy.Name, r.Legacy.FollowersCount, r.Legacy.StatusesCount)

	err, tweets := xClient.GetAllUserTweets(r.RestID, *maxTweets)
	if err != nil {
		logger.Errorf("GetAllUserTweets error: %v", err)
	}
	for _, t := range tweets {
		fmt.Printf("[%s] %s: %s\n", t.CreatedAt, t.ID, t.Text)
	}
	logger.Infof("Fetched %d tweets from @%s", len(tweets), r.Legacy.ScreenName)
}
