package domain

// MetricRecord is one CloudWatch metric-stream JSON line. It stays a generic
// object so fields the enricher does not know about pass through untouched.
type MetricRecord map[string]any

func (r MetricRecord) Clone() MetricRecord {
	out := make(MetricRecord, len(r))
	for k, v := range r {
		if dims, ok := v.(map[string]any); ok {
			copied := make(map[string]any, len(dims))
			for dk, dv := range dims {
				copied[dk] = dv
			}
			v = copied
		}
		out[k] = v
	}
	return out
}

// LogGroupEvent is the payload CloudWatch Logs hands to a subscription filter.
type LogGroupEvent struct {
	MessageType         string     `json:"messageType"`
	Owner               string     `json:"owner"`
	LogGroup            string     `json:"logGroup"`
	LogStream           string     `json:"logStream"`
	SubscriptionFilters []string   `json:"subscriptionFilters"`
	LogEvents           []LogEvent `json:"logEvents"`
}

type LogEvent struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// LogEntry is a single enriched log line.
type LogEntry struct {
	LogGroup  string `json:"logGroup"`
	LogStream string `json:"logStream"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Tags      TagMap `json:"Tags"`
}
