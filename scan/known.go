package scan

// data from https://www.iana.org/assignments/service-names-port-numbers/service-names-port-numbers.csv
// regenerate with: go run ./tools
var knownPorts = map[int]string{
	7:     "echo",
	9:     "discard",
	13:    "daytime",
	20:    "ftp-data",
	21:    "ftp",
	22:    "ssh",
	23:    "telnet",
	25:    "smtp",
	37:    "time",
	43:    "nicname",
	53:    "domain",
	70:    "gopher",
	79:    "finger",
	80:    "http",
	88:    "kerberos",
	110:   "pop3",
	111:   "sunrpc",
	113:   "auth",
	119:   "nntp",
	123:   "ntp",
	135:   "epmap",
	139:   "netbios-ssn",
	143:   "imap",
	161:   "snmp",
	179:   "bgp",
	194:   "irc",
	389:   "ldap",
	427:   "svrloc",
	443:   "https",
	445:   "microsoft-ds",
	464:   "kpasswd",
	465:   "submissions",
	514:   "shell",
	515:   "printer",
	543:   "klogin",
	548:   "afpovertcp",
	554:   "rtsp",
	587:   "submission",
	631:   "ipp",
	636:   "ldaps",
	873:   "rsync",
	902:   "ideafarm-door",
	989:   "ftps-data",
	990:   "ftps",
	993:   "imaps",
	995:   "pop3s",
	1080:  "socks",
	1433:  "ms-sql-s",
	1521:  "ncube-lm",
	1723:  "pptp",
	1883:  "mqtt",
	2049:  "nfs",
	2181:  "eforward",
	2375:  "docker",
	2376:  "docker-s",
	3128:  "ndl-aas",
	3268:  "msft-gc",
	3306:  "mysql",
	3389:  "ms-wbt-server",
	4369:  "epmd",
	5060:  "sip",
	5222:  "xmpp-client",
	5269:  "xmpp-server",
	5432:  "postgresql",
	5672:  "amqp",
	5900:  "rfb",
	5984:  "couchdb",
	6379:  "redis",
	6667:  "ircd",
	8080:  "http-alt",
	8443:  "pcsync-https",
	8888:  "ddi-tcp-1",
	9090:  "websm",
	9200:  "wap-wsp",
	9418:  "git",
	11211: "memcache",
	27017: "mongodb",
}
