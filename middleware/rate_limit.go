package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/SabinGhost19/RoomBooking/services"
)

// Each IP gets its own limiter plus lastSeen for cleanup
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter manages map<ip, limiter>
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	// shared configuration for all IPs
	reqPerMin int
	burst     int
	ttl       time.Duration
}

// reqPerMin: e.g. 10, burst: 5, ttl: 5 minutes (idle IPs get swept)
func NewIPRateLimiter(reqPerMin, burst int, ttl time.Duration) *IPRateLimiter {
	rl := &IPRateLimiter{
		visitors:  make(map[string]*visitor),
		reqPerMin: reqPerMin,
		burst:     burst,
		ttl:       ttl,
	}
	go rl.cleanupVisitors()
	return rl
}

func (rl *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.visitors[ip]; ok {
		v.lastSeen = time.Now()
		return v.limiter
	}

	// requests/minute -> rate.Limit (requests/second)
	rps := float64(rl.reqPerMin) / 60.0
	limiter := rate.NewLimiter(rate.Limit(rps), rl.burst)
	rl.visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

func (rl *IPRateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > rl.ttl {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func RateLimitByIP(rl *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := rl.getLimiter(ip)
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"kind":    services.KindRateLimited,
				"message": "too many requests, try again in a few minutes",
			})
			return
		}
		c.Next()
	}
}

// 10 login attempts/minute/IP, burst 5
var LoginLimiter = NewIPRateLimiter(10, 5, 5*time.Minute)

// RateLimitLogin guards POST /api/auth/login
func RateLimitLogin() gin.HandlerFunc {
	return RateLimitByIP(LoginLimiter)
}

// 10 bookings/minute/IP, burst 5
var BookingCreateLimiter = NewIPRateLimiter(10, 5, 5*time.Minute)

// RateLimitBookingCreate guards POST /api/bookings
func RateLimitBookingCreate() gin.HandlerFunc {
	return RateLimitByIP(BookingCreateLimiter)
}
