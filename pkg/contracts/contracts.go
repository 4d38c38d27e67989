// Package contracts pins the YouTube Data API v3 wire shapes this tool
// depends on. Each constant is a response body captured from the live API
// (ids and counters anonymized); the tests assert that our client keeps
// parsing them. When Google changes a field, these fixtures fail first.
package contracts

// SearchListContract is a search.list page with a continuation token.
const SearchListContract = `{
  "kind": "youtube#searchListResponse",
  "etag": "s9Xm2KqGkcT1w8eTB3PqkFhVd7o",
  "nextPageToken": "CDIQAA",
  "regionCode": "BR",
  "pageInfo": {
    "totalResults": 815204,
    "resultsPerPage": 50
  },
  "items": [
    {
      "kind": "youtube#searchResult",
      "etag": "wLm4dDDDRsKPmYxEkRU1lJTzaDE",
      "id": {
        "kind": "youtube#video",
        "videoId": "k2h1xQ7mPd4"
      }
    },
    {
      "kind": "youtube#searchResult",
      "etag": "iF0JtBzXO2cbhQlazHZBu0KVGmo",
      "id": {
        "kind": "youtube#video",
        "videoId": "zR8vTn3yWq0"
      }
    },
    {
      "kind": "youtube#searchResult",
      "etag": "Qy3mkaT9PCVxersGG4JP3bPEkXs",
      "id": {
        "kind": "youtube#channel",
        "channelId": "UCshadowedOutByTypeFilter"
      }
    }
  ]
}`

// VideoListContract is a videos.list response carrying the three parts the
// client requests: snippet, statistics, contentDetails. The second item has
// a hidden like count and no maxres thumbnail, both of which the real API
// produces routinely.
const VideoListContract = `{
  "kind": "youtube#videoListResponse",
  "etag": "nGbSSXyZ7L3nmZUBIRxipp6TRYk",
  "pageInfo": {
    "totalResults": 2,
    "resultsPerPage": 2
  },
  "items": [
    {
      "kind": "youtube#video",
      "etag": "M1To0ZGE4dnVuemtIcUFXTFFk3x8",
      "id": "k2h1xQ7mPd4",
      "snippet": {
        "publishedAt": "2026-08-12T14:30:00Z",
        "channelId": "UCk9PqlV2mm4XqT0sYeZg1xA",
        "title": "Marcenaria para iniciantes: bancada completa",
        "description": "Construindo uma bancada do zero.",
        "thumbnails": {
          "default": { "url": "https://i.ytimg.com/vi/k2h1xQ7mPd4/default.jpg", "width": 120, "height": 90 },
          "medium": { "url": "https://i.ytimg.com/vi/k2h1xQ7mPd4/mqdefault.jpg", "width": 320, "height": 180 },
          "high": { "url": "https://i.ytimg.com/vi/k2h1xQ7mPd4/hqdefault.jpg", "width": 480, "height": 360 },
          "standard": { "url": "https://i.ytimg.com/vi/k2h1xQ7mPd4/sddefault.jpg", "width": 640, "height": 480 },
          "maxres": { "url": "https://i.ytimg.com/vi/k2h1xQ7mPd4/maxresdefault.jpg", "width": 1280, "height": 720 }
        },
        "channelTitle": "Oficina do K9",
        "categoryId": "26",
        "liveBroadcastContent": "none"
      },
      "contentDetails": {
        "duration": "PT28M41S",
        "dimension": "2d",
        "definition": "hd",
        "caption": "false",
        "licensedContent": true
      },
      "statistics": {
        "viewCount": "412907",
        "likeCount": "18320",
        "favoriteCount": "0",
        "commentCount": "951"
      }
    },
    {
      "kind": "youtube#video",
      "etag": "dXNlci1nZW5lcmF0ZWQtZXRhZ44",
      "id": "zR8vTn3yWq0",
      "snippet": {
        "publishedAt": "2026-08-20T09:05:12Z",
        "channelId": "UCzW0b7GPqronf2e8RkYmV3qQ",
        "title": "Restaurando uma plaina antiga",
        "description": "",
        "thumbnails": {
          "default": { "url": "https://i.ytimg.com/vi/zR8vTn3yWq0/default.jpg", "width": 120, "height": 90 },
          "medium": { "url": "https://i.ytimg.com/vi/zR8vTn3yWq0/mqdefault.jpg", "width": 320, "height": 180 },
          "high": { "url": "https://i.ytimg.com/vi/zR8vTn3yWq0/hqdefault.jpg", "width": 480, "height": 360 }
        },
        "channelTitle": "Ferramentas Vivas",
        "categoryId": "26",
        "liveBroadcastContent": "none"
      },
      "contentDetails": {
        "duration": "PT9M2S",
        "dimension": "2d",
        "definition": "hd",
        "caption": "false",
        "licensedContent": false
      },
      "statistics": {
        "viewCount": "58112",
        "favoriteCount": "0",
        "commentCount": "204"
      }
    }
  ]
}`

// ChannelListContract is a channels.list response. The second channel hides
// its subscriber count, which arrives as hiddenSubscriberCount=true with the
// subscriberCount field absent.
const ChannelListContract = `{
  "kind": "youtube#channelListResponse",
  "etag": "RV8lnsNCvwGbHyAW2TgW9wNJ3dQ",
  "pageInfo": {
    "totalResults": 2,
    "resultsPerPage": 2
  },
  "items": [
    {
      "kind": "youtube#channel",
      "etag": "Y2hhbm5lbC1ldGFnLXBsYWNlaG8x",
      "id": "UCk9PqlV2mm4XqT0sYeZg1xA",
      "snippet": {
        "title": "Oficina do K9",
        "description": "Marcenaria e restauro.",
        "customUrl": "@oficinadok9",
        "publishedAt": "2019-03-11T18:22:41Z",
        "country": "BR"
      },
      "statistics": {
        "viewCount": "15204881",
        "subscriberCount": "8340",
        "hiddenSubscriberCount": false,
        "videoCount": "164"
      }
    },
    {
      "kind": "youtube#channel",
      "etag": "Y2hhbm5lbC1ldGFnLXBsYWNlaG8y",
      "id": "UCzW0b7GPqronf2e8RkYmV3qQ",
      "snippet": {
        "title": "Ferramentas Vivas",
        "description": "",
        "publishedAt": "2021-07-02T03:10:09Z"
      },
      "statistics": {
        "viewCount": "2904112",
        "hiddenSubscriberCount": true,
        "videoCount": "88"
      }
    }
  ]
}`

// VideoCategoryListContract is a videoCategories.list response. The
// "Short Movies" entry is non-assignable; real videos never carry it and
// the client must filter it out.
const VideoCategoryListContract = `{
  "kind": "youtube#videoCategoryListResponse",
  "etag": "o2mZanDsHWLjW4lFFLcb8qxT2Mc",
  "items": [
    {
      "kind": "youtube#videoCategory",
      "etag": "Y2F0ZWdvcnktZXRhZy1vbmU1678",
      "id": "10",
      "snippet": {
        "title": "Music",
        "assignable": true,
        "channelId": "UCBR8-60-B28hp2BmDPdntcQ"
      }
    },
    {
      "kind": "youtube#videoCategory",
      "etag": "Y2F0ZWdvcnktZXRhZy10d28ABCD",
      "id": "26",
      "snippet": {
        "title": "Howto & Style",
        "assignable": true,
        "channelId": "UCBR8-60-B28hp2BmDPdntcQ"
      }
    },
    {
      "kind": "youtube#videoCategory",
      "etag": "Y2F0ZWdvcnktZXRhZy10aHJlZQ1",
      "id": "18",
      "snippet": {
        "title": "Short Movies",
        "assignable": false,
        "channelId": "UCBR8-60-B28hp2BmDPdntcQ"
      }
    }
  ]
}`

// QuotaErrorContract is the 403 body returned once the daily quota is spent.
// The reason field, not the status code, is what distinguishes it from a
// rejected key.
const QuotaErrorContract = `{
  "error": {
    "code": 403,
    "message": "The request cannot be completed because you have exceeded your quota.",
    "errors": [
      {
        "message": "The request cannot be completed because you have exceeded your quota.",
        "domain": "youtube.quota",
        "reason": "quotaExceeded"
      }
    ],
    "status": "RESOURCE_EXHAUSTED"
  }
}`

// KeyInvalidErrorContract is the 400 body returned for a malformed or
// revoked API key.
const KeyInvalidErrorContract = `{
  "error": {
    "code": 400,
    "message": "API key not valid. Please pass a valid API key.",
    "errors": [
      {
        "message": "API key not valid. Please pass a valid API key.",
        "domain": "global",
        "reason": "keyInvalid"
      }
    ],
    "status": "INVALID_ARGUMENT"
  }
}`
