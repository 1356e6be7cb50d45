package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain counters. They register on the default registry which is what
// /metrics serves.
var (
	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commons_reports_total",
			Help: "Total number of reports filed",
		},
		[]string{"kind"},
	)

	CommentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commons_comments_total",
			Help: "Total number of comments posted",
		},
		[]string{"kind"},
	)

	MediaEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commons_media_entries_total",
			Help: "Media library rows created by the indexer",
		},
		[]string{"kind"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commons_notifications_total",
			Help: "Notifications created",
		},
		[]string{"type"},
	)

	NotificationRedirects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commons_notification_redirects_total",
			Help: "Notification redirect attempts by outcome",
		},
		[]string{"outcome"},
	)

	SuspensionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "commons_account_suspensions_total",
			Help: "Accounts suspended",
		},
	)

	RegistrationsHeld = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "commons_registrations_held_total",
			Help: "Registrations created inactive because of an untrusted ip or device",
		},
	)

	GeoLookupFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commons_geoip_failures_total",
			Help: "Geo-IP lookups that returned no location",
		},
		[]string{"reason"},
	)

	MailFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "commons_mail_failures_total",
			Help: "Emails that could not be delivered",
		},
	)
)
