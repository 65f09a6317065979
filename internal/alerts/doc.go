// Package alerts evaluates threshold rules against schedule-health reports.
package alerts
