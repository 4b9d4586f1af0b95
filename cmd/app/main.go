package main

import (
	"Question-Bank-Crawler/internal/api"
	"Question-Bank-Crawler/internal/client"
	"Question-Bank-Crawler/internal/model"
	"Question-Bank-Crawler/internal/repository"
	"Question-Bank-Crawler/internal/router"
	"Question-Bank-Crawler/internal/service"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

func main() {
	once := flag.Bool("once", false, "执行一次爬取后退出，不启动HTTP服务")
	flag.Parse()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("CRAWLER_APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("警告：未找到 config.yaml 文件，将完全依赖环境变量进行配置。")
		} else {
			log.Fatalf("读取配置文件失败: %s", err)
		}
	}

	questionClient := client.NewQuestionClient(
		viper.GetString("crawler.base_url"),
		viper.GetString("crawler.questions_endpoint"),
		viper.GetStringMapString("crawler.cookies"),
		viper.GetInt("crawler.timeout_seconds"),
	)

	answerBankRepo, err := repository.NewAnswerBankRepository(viper.GetString("answer_bank.path"))
	if err != nil {
		log.Fatalf("初始化答案库失败: %s", err)
	}

	defaults := model.CrawlOptions{
		MaxPages:      viper.GetInt("crawler.max_pages"),
		PageSize:      viper.GetInt("crawler.page_size"),
		Concurrency:   viper.GetInt("crawler.concurrency"),
		Course:        viper.GetString("crawler.course"),
		QuestionTypes: viper.GetStringSlice("crawler.question_types"),
		OutputFile:    viper.GetString("output.file"),
	}

	crawlService := service.NewCrawlService(questionClient, answerBankRepo, defaults, viper.GetBool("answer_bank.backfill"))

	if *once {
		stats, err := crawlService.Crawl(defaults)
		if err != nil {
			log.Fatalf("爬取失败: %s", err)
		}
		fmt.Printf("爬取完成！成功 %d 页，失败 %d 页，共 %d 道题目（有答案 %d，无答案 %d）。\n",
			stats.PagesFetched, stats.PagesFailed, stats.TotalCrawled, stats.Answered, stats.AnswerMissing)
		return
	}

	crawlHandler := api.NewCrawlHandler(crawlService)
	r := router.SetupRouter(crawlHandler, viper.GetStringSlice("cors.allowed_origins"))

	serverPort := viper.GetString("server.port")
	fmt.Printf("服务启动于 http://localhost%s\n", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("服务启动失败: %s", err)
	}
}
