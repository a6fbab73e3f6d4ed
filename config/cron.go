package config

import (
	"storefront.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"categorysyncjob": {Schedule: "0 * * * *", Job: jobs.CategorySyncJob},
	"mediathumbsjob":  {Schedule: "30 2 * * *", Job: jobs.MediaThumbsJob},
	// Add more jobs here
}
